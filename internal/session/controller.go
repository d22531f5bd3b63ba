// Package session implements the user-facing quiz operations on top of a store.Library.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/starquake/quizapp/internal/game"
	"github.com/starquake/quizapp/internal/logging"
	"github.com/starquake/quizapp/internal/quiz"
	"github.com/starquake/quizapp/internal/store"
)

// Controller creates, plays, lists and deletes quizzes.
type Controller struct {
	lib    *store.Library
	logger *logging.Logger
	now    func() time.Time
}

// Summary describes a quiz in a listing.
type Summary struct {
	Name      string
	Questions int
	Default   bool
}

// NewController creates a Controller working on lib. The library must already be open.
func NewController(lib *store.Library, logger *logging.Logger) *Controller {
	return &Controller{
		lib:    lib,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateQuiz validates req and stores the quiz under its name, replacing any quiz with the same name.
// It returns the name the quiz was stored under. When validation fails the library is left untouched.
// When saving fails the quiz stays in memory and the save error is returned.
func (c *Controller) CreateQuiz(ctx context.Context, req CreateRequest) (string, error) {
	name, qz, err := BuildQuiz(req)
	if err != nil {
		return "", err
	}
	qz.CreatedAt = c.now()

	_, replaced := c.lib.Get(name)
	c.lib.Put(name, qz)
	c.logger.Info(ctx, "quiz created",
		logging.String("quiz", name),
		logging.Int("questions", len(qz.Questions)),
		logging.Bool("replaced", replaced),
	)

	if err = c.lib.Save(ctx); err != nil {
		return name, err
	}

	return name, nil
}

// Quiz returns the quiz stored under name.
func (c *Controller) Quiz(name string) (*quiz.Quiz, error) {
	if c.lib.Len() == 0 {
		return nil, ErrNoQuizzesAvailable
	}
	qz, ok := c.lib.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrQuizNotFound, name)
	}

	return qz, nil
}

// PlayQuiz plays the quiz stored under name with p and returns the result. Nothing is persisted.
func (c *Controller) PlayQuiz(ctx context.Context, name string, p game.Player) (game.Result, error) {
	qz, err := c.Quiz(name)
	if err != nil {
		return game.Result{}, err
	}

	attempt, err := game.NewAttempt(qz)
	if err != nil {
		return game.Result{}, fmt.Errorf("failed to start quiz %q: %w", name, err)
	}

	logger := c.logger.With(logging.String("attempt", attempt.ID), logging.String("quiz", name))
	logger.Debug(ctx, "attempt started")

	res, err := attempt.Play(ctx, p)
	if err != nil {
		logger.Warn(ctx, "attempt aborted", logging.ErrAttr(err))

		return game.Result{}, fmt.Errorf("failed to play quiz %q: %w", name, err)
	}

	logger.Info(ctx, "attempt finished",
		logging.String("score", res.String()),
		logging.Int("unanswered", res.Unanswered),
		logging.String("tier", res.Tier.String()),
	)

	return res, nil
}

// DeleteQuiz removes the quiz stored under name and saves the library.
// The default quiz is never removed.
func (c *Controller) DeleteQuiz(ctx context.Context, name string) error {
	if c.lib.Len() == 0 {
		return ErrNoQuizzesAvailable
	}
	if name == quiz.DefaultName {
		return ErrDefaultQuizProtected
	}
	if !c.lib.Remove(name) {
		return fmt.Errorf("%w: %q", ErrQuizNotFound, name)
	}

	c.logger.Info(ctx, "quiz deleted", logging.String("quiz", name))

	return c.lib.Save(ctx)
}

// ListQuizzes returns the quizzes sorted by name.
func (c *Controller) ListQuizzes() []Summary {
	names := c.lib.Names()
	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		qz, _ := c.lib.Get(name)
		summaries = append(summaries, Summary{
			Name:      name,
			Questions: len(qz.Questions),
			Default:   name == quiz.DefaultName,
		})
	}

	return summaries
}

// Close saves the library and releases its backend.
func (c *Controller) Close(ctx context.Context) error {
	saveErr := c.lib.Save(ctx)
	if err := c.lib.Close(); err != nil {
		if saveErr != nil {
			return fmt.Errorf("%w; %w", saveErr, err)
		}

		return err
	}

	return saveErr
}
