package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/starquake/quizapp/internal/quiz"
)

var errStorage = errors.New("disk on fire")

// catalogOpts compares catalogs ignoring sub-millisecond time differences, SQLite keeps milliseconds.
var catalogOpts = []cmp.Option{cmpopts.EquateApproxTime(time.Millisecond), cmpopts.EquateEmpty()}

func newTestCatalog(t *testing.T) quiz.Catalog {
	t.Helper()

	created := time.Date(2026, 3, 14, 15, 9, 26, 535_000_000, time.UTC)

	return quiz.Catalog{
		"Geo": {
			CreatedAt: created,
			Questions: []*quiz.Question{
				{Text: "Capital of France?", Options: []string{"Paris", "Lyon"}, CorrectIndex: 0},
				{Text: "Longest river?", Options: []string{"Amazon", "Nile", "Yangtze"}, CorrectIndex: 1},
			},
		},
		"Maths": {
			CreatedAt: created.Add(time.Hour),
			Questions: []*quiz.Question{
				{Text: "What is 3 * 3?", Options: []string{"6", "9", "12", "3"}, CorrectIndex: 1},
				{Text: "What is 10 / 2?", Options: []string{"2", "4", "5"}, CorrectIndex: 2},
				{Text: "Is 7 prime?", Options: []string{"Yes", "No"}, CorrectIndex: 0},
			},
		},
		quiz.DefaultName: quiz.Default(),
	}
}

// memStore is an in-memory quiz.Store with injectable failures.
type memStore struct {
	saved   quiz.Catalog
	loadErr error
	saveErr error
	saves   int
	closed  bool
}

func (m *memStore) Load(context.Context) (quiz.Catalog, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	c := make(quiz.Catalog, len(m.saved))
	for name, qz := range m.saved {
		c[name] = qz
	}

	return c, nil
}

func (m *memStore) Save(_ context.Context, c quiz.Catalog) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = make(quiz.Catalog, len(c))
	for name, qz := range c {
		m.saved[name] = qz
	}

	return nil
}

func (m *memStore) Close() error {
	m.closed = true

	return nil
}
