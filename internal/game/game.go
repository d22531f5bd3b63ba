// Package game contains the game domain logic: one play-through of a quiz.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/starquake/quizapp/internal/quiz"
)

var (
	// ErrEmptyQuiz is returned when a quiz without questions is played.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrNoMoreQuestions is returned when an answer is given after the last question.
	ErrNoMoreQuestions = errors.New("no more questions")
)

// Outcome is the result of answering a single question.
type Outcome int

// Possible outcomes of an answer.
const (
	OutcomeIncorrect Outcome = iota
	OutcomeCorrect
	OutcomeNoAnswer
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeNoAnswer:
		return "no answer"
	default:
		return "incorrect"
	}
}

// Turn is a question presented to the player.
type Turn struct {
	// Number is the 1-based position of the question.
	Number   int
	Total    int
	Question *quiz.Question
}

// Attempt represents one play-through of a quiz.
type Attempt struct {
	ID        string
	Quiz      *quiz.Quiz
	StartedAt time.Time
	answers   []int
	outcomes  []Outcome
}

// Result is the final score of an attempt.
type Result struct {
	AttemptID  string
	Score      int
	Total      int
	Unanswered int
	Tier       quiz.Tier
}

// NewAttempt starts a new attempt for qz.
func NewAttempt(qz *quiz.Quiz) (*Attempt, error) {
	if qz == nil || len(qz.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}

	return &Attempt{
		ID:        xid.New().String(),
		Quiz:      qz,
		StartedAt: time.Now().UTC(),
		answers:   make([]int, 0, len(qz.Questions)),
		outcomes:  make([]Outcome, 0, len(qz.Questions)),
	}, nil
}

// Next returns the next unanswered question, or false when all questions are answered.
func (a *Attempt) Next() (Turn, bool) {
	pos := len(a.answers)
	if pos >= len(a.Quiz.Questions) {
		return Turn{}, false
	}

	return Turn{Number: pos + 1, Total: len(a.Quiz.Questions), Question: a.Quiz.Questions[pos]}, true
}

// Answer records the answer to the current question.
// Any index that is not one of the options counts as no answer.
func (a *Attempt) Answer(index int) (Outcome, error) {
	turn, ok := a.Next()
	if !ok {
		return OutcomeIncorrect, ErrNoMoreQuestions
	}

	var outcome Outcome
	switch {
	case index < 0 || index >= len(turn.Question.Options):
		index = quiz.NoAnswer
		outcome = OutcomeNoAnswer
	case quiz.IsCorrect(turn.Question, index):
		outcome = OutcomeCorrect
	default:
		outcome = OutcomeIncorrect
	}

	a.answers = append(a.answers, index)
	a.outcomes = append(a.outcomes, outcome)

	return outcome, nil
}

// Done reports whether every question has been answered.
func (a *Attempt) Done() bool {
	return len(a.answers) == len(a.Quiz.Questions)
}

// Answers returns the answers given so far.
func (a *Attempt) Answers() []int {
	return append([]int(nil), a.answers...)
}

// Result scores the attempt. Unanswered questions count against the score.
func (a *Attempt) Result() (Result, error) {
	score, err := quiz.Score(a.Quiz, a.answers)
	if err != nil {
		return Result{}, fmt.Errorf("failed to score attempt %s: %w", a.ID, err)
	}

	unanswered := 0
	for _, o := range a.outcomes {
		if o == OutcomeNoAnswer {
			unanswered++
		}
	}

	total := len(a.Quiz.Questions)

	return Result{
		AttemptID:  a.ID,
		Score:      score,
		Total:      total,
		Unanswered: unanswered,
		Tier:       quiz.Grade(score, total),
	}, nil
}

// String returns the score as "<score>/<total>".
func (r Result) String() string {
	return fmt.Sprintf("%d/%d", r.Score, r.Total)
}

// Summary returns the message shown to the player when the quiz is over.
func (r Result) Summary() string {
	return "Quiz Over! Your final score: " + r.String() + "\n" + r.Tier.Message()
}

// Player answers the questions of an attempt.
type Player interface {
	// Answer returns the chosen option index for the turn, or quiz.NoAnswer.
	Answer(ctx context.Context, turn Turn) (int, error)
	// NoAnswer is called when the turn ended without an answer.
	NoAnswer(ctx context.Context, turn Turn)
}

// Play runs the attempt to completion with p and returns the result.
func (a *Attempt) Play(ctx context.Context, p Player) (Result, error) {
	for {
		turn, ok := a.Next()
		if !ok {
			break
		}

		index, err := p.Answer(ctx, turn)
		if err != nil {
			return Result{}, fmt.Errorf("failed to answer question %d: %w", turn.Number, err)
		}

		outcome, err := a.Answer(index)
		if err != nil {
			return Result{}, fmt.Errorf("failed to record answer to question %d: %w", turn.Number, err)
		}
		if outcome == OutcomeNoAnswer {
			p.NoAnswer(ctx, turn)
		}
	}

	return a.Result()
}

// AnswerSheet is a Player that answers from a list collected up front.
// Missing entries are treated as no answer.
type AnswerSheet []int

// Answer returns the answer for the turn.
func (s AnswerSheet) Answer(_ context.Context, turn Turn) (int, error) {
	if turn.Number-1 >= len(s) {
		return quiz.NoAnswer, nil
	}

	return s[turn.Number-1], nil
}

// NoAnswer does nothing.
func (AnswerSheet) NoAnswer(context.Context, Turn) {}
