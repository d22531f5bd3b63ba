// Package quiz contains the quiz model: questions, quizzes, scoring and grading.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// DefaultName is the name of the built-in quiz. It is seeded into an empty catalog and can never be deleted.
const DefaultName = "Ultimate Trivia Challenge"

// NoAnswer is the answer index recorded when the player did not pick an option.
const NoAnswer = -1

// MinOptions is the minimum number of options a question must have.
const MinOptions = 2

var (
	// ErrAnswerCount is returned when the number of answers does not match the number of questions.
	ErrAnswerCount = errors.New("answer count does not match question count")
	// ErrInvalidQuiz is returned when a quiz read from storage does not hold up to validation.
	ErrInvalidQuiz = errors.New("invalid quiz")
)

// Question represents a multiple-choice question.
type Question struct {
	Text         string
	Options      []string
	CorrectIndex int
}

// Valid checks if the question is valid.
func (q *Question) Valid(_ context.Context) map[string]string {
	problems := make(map[string]string)
	if q.Text == "" {
		problems["text"] = "Text is required"
	}
	if len(q.Options) < MinOptions {
		problems["options"] = fmt.Sprintf("At least %d options are required", MinOptions)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		problems["correct"] = "Correct option must be one of the options"
	}

	return problems
}

// Quiz represents a quiz.
type Quiz struct {
	Questions []*Question
	CreatedAt time.Time
}

// Valid checks if the quiz is valid. Problems of questions are keyed by their position.
func (q *Quiz) Valid(ctx context.Context) map[string]string {
	problems := make(map[string]string)
	if len(q.Questions) == 0 {
		problems["questions"] = "At least one question is required"
	}
	for i, qs := range q.Questions {
		if qs == nil {
			problems[fmt.Sprintf("questions[%d]", i)] = "Question is missing"

			continue
		}
		for field, problem := range qs.Valid(ctx) {
			problems[fmt.Sprintf("questions[%d].%s", i, field)] = problem
		}
	}

	return problems
}

// Default returns the built-in quiz stored under DefaultName.
func Default() *Quiz {
	return &Quiz{
		Questions: []*Question{
			{
				Text:         "What is 2 + 2?",
				Options:      []string{"2", "4", "6", "8"},
				CorrectIndex: 1,
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}

// Catalog maps quiz names to quizzes.
type Catalog map[string]*Quiz

// Names returns the quiz names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Store is a durable backend for a catalog.
// This can be implemented for different storage formats.
type Store interface {
	// Load reads the whole catalog.
	Load(ctx context.Context) (Catalog, error)
	// Save replaces the stored catalog with c. Either all of c is stored or nothing changes.
	Save(ctx context.Context, c Catalog) error
	// Close releases the resources held by the store.
	Close() error
}

// IsCorrect reports whether answer is the correct option of q.
// Out of range answers, NoAnswer included, are never correct.
func IsCorrect(q *Question, answer int) bool {
	return answer == q.CorrectIndex
}

// Score counts the answers that are correct for the question at the same position.
func Score(q *Quiz, answers []int) (int, error) {
	if len(answers) != len(q.Questions) {
		return 0, fmt.Errorf("%w: %d answers for %d questions", ErrAnswerCount, len(answers), len(q.Questions))
	}

	score := 0
	for i, qs := range q.Questions {
		if IsCorrect(qs, answers[i]) {
			score++
		}
	}

	return score, nil
}
