package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/starquake/quizapp/internal/quiz"
)

// QuestionInput is a question as typed by the user, before validation.
type QuestionInput struct {
	Text        string
	OptionCount string
	Options     []string
	// Correct is the 1-based number of the correct option.
	Correct string
}

// CreateRequest is a quiz as typed by the user, before validation.
type CreateRequest struct {
	Name      string
	Count     string
	Questions []QuestionInput
}

// ValidateName trims name and rejects it when nothing is left.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}

	return name, nil
}

// ParseQuestionCount parses the number of questions, which must be a positive integer.
func ParseQuestionCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidCount, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	return n, nil
}

// ParseOptionCount parses the number of options of a question, which must be at least quiz.MinOptions.
func ParseOptionCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidOptionCount, s)
	}
	if n < quiz.MinOptions {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidOptionCount, n)
	}

	return n, nil
}

// ParseCorrectOption parses the 1-based number of the correct option and returns its 0-based index.
func ParseCorrectOption(s string, optionCount int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidCorrectOption, s)
	}
	if n < 1 || n > optionCount {
		return 0, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidCorrectOption, n, optionCount)
	}

	return n - 1, nil
}

// ValidateQuestionText trims text and rejects it when nothing is left.
func ValidateQuestionText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrInvalidQuestion
	}

	return text, nil
}

// BuildQuestion validates in and builds the question it describes.
func BuildQuestion(in QuestionInput) (*quiz.Question, error) {
	text, err := ValidateQuestionText(in.Text)
	if err != nil {
		return nil, err
	}

	optionCount, err := ParseOptionCount(in.OptionCount)
	if err != nil {
		return nil, err
	}
	if len(in.Options) != optionCount {
		return nil, fmt.Errorf("%w: expected %d options, got %d", ErrInvalidOptionCount, optionCount, len(in.Options))
	}

	correct, err := ParseCorrectOption(in.Correct, optionCount)
	if err != nil {
		return nil, err
	}

	options := make([]string, 0, optionCount)
	for _, o := range in.Options {
		options = append(options, strings.TrimSpace(o))
	}

	return &quiz.Question{Text: text, Options: options, CorrectIndex: correct}, nil
}

// BuildQuiz validates req and builds the quiz it describes. It returns the trimmed name.
// Nothing is built unless every question is valid.
func BuildQuiz(req CreateRequest) (string, *quiz.Quiz, error) {
	name, err := ValidateName(req.Name)
	if err != nil {
		return "", nil, err
	}

	count, err := ParseQuestionCount(req.Count)
	if err != nil {
		return "", nil, err
	}
	if len(req.Questions) != count {
		return "", nil, fmt.Errorf("%w: expected %d questions, got %d", ErrInvalidCount, count, len(req.Questions))
	}

	questions := make([]*quiz.Question, 0, count)
	for i, in := range req.Questions {
		qs, buildErr := BuildQuestion(in)
		if buildErr != nil {
			return "", nil, fmt.Errorf("question %d: %w", i+1, buildErr)
		}
		questions = append(questions, qs)
	}

	return name, &quiz.Quiz{Questions: questions}, nil
}
