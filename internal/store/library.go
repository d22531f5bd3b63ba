package store

import (
	"context"
	"fmt"
	"time"

	"github.com/starquake/quizapp/internal/logging"
	"github.com/starquake/quizapp/internal/quiz"
)

// Library owns the in-memory catalog for the lifetime of the process and writes it through to a backend.
// The in-memory catalog is the source of truth. A backend that cannot be read is treated as empty and
// a backend that cannot be written is reported, the catalog stays as it is.
type Library struct {
	store   quiz.Store
	logger  *logging.Logger
	quizzes quiz.Catalog
}

// NewLibrary creates an empty Library backed by s. Call Open to read the stored quizzes.
func NewLibrary(s quiz.Store, logger *logging.Logger) *Library {
	return &Library{store: s, logger: logger, quizzes: quiz.Catalog{}}
}

// Open loads the stored quizzes and seeds the default quiz when there are none.
func (l *Library) Open(ctx context.Context) {
	l.Load(ctx)
	l.EnsureDefault(ctx)
}

// Load replaces the in-memory catalog with the stored one and returns it.
// Any read failure yields an empty catalog. The failure is logged, never returned.
func (l *Library) Load(ctx context.Context) quiz.Catalog {
	start := time.Now()
	c, err := l.store.Load(ctx)
	if err != nil {
		l.logger.Warn(ctx, "could not read stored quizzes, starting with an empty library", logging.ErrAttr(err))
		c = quiz.Catalog{}
	}
	if c == nil {
		c = quiz.Catalog{}
	}
	l.quizzes = c

	l.logger.Debug(ctx, "loaded quizzes",
		logging.Int("quizzes", len(c)),
		logging.String("took", time.Since(start).String()),
	)

	return c
}

// Save writes the whole catalog to the backend. Failures are logged and returned; there is no retry.
func (l *Library) Save(ctx context.Context) error {
	if err := l.store.Save(ctx, l.quizzes); err != nil {
		l.logger.Error(ctx, "error saving quizzes", logging.ErrAttr(err))

		return fmt.Errorf("failed to save quizzes: %w", err)
	}

	return nil
}

// EnsureDefault inserts and saves the default quiz if the catalog is empty. It reports whether it did.
func (l *Library) EnsureDefault(ctx context.Context) bool {
	if len(l.quizzes) > 0 {
		return false
	}

	l.quizzes[quiz.DefaultName] = quiz.Default()
	l.logger.Info(ctx, "seeded default quiz", logging.String("quiz", quiz.DefaultName))

	// Save failures are already logged, the default quiz stays in memory either way.
	_ = l.Save(ctx)

	return true
}

// Get returns the quiz stored under name.
func (l *Library) Get(name string) (*quiz.Quiz, bool) {
	qz, ok := l.quizzes[name]

	return qz, ok
}

// Put stores qz under name, replacing any existing quiz. It does not save.
func (l *Library) Put(name string, qz *quiz.Quiz) {
	l.quizzes[name] = qz
}

// Remove deletes the quiz stored under name and reports whether there was one. It does not save.
func (l *Library) Remove(name string) bool {
	if _, ok := l.quizzes[name]; !ok {
		return false
	}
	delete(l.quizzes, name)

	return true
}

// Len returns the number of quizzes.
func (l *Library) Len() int {
	return len(l.quizzes)
}

// Names returns the quiz names in sorted order.
func (l *Library) Names() []string {
	return l.quizzes.Names()
}

// Close releases the backend.
func (l *Library) Close() error {
	if err := l.store.Close(); err != nil {
		return fmt.Errorf("failed to close quiz store: %w", err)
	}

	return nil
}
