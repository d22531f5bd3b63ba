package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/starquake/quizapp/internal/database"
	"github.com/starquake/quizapp/internal/logging"
	"github.com/starquake/quizapp/internal/quiz"
)

// SQL used by SQLiteStore.
const (
	ListQuizzesSQL   = `SELECT id, name, created_at FROM quizzes ORDER BY name`
	ListQuestionsSQL = `SELECT id, text FROM questions WHERE quiz_id = ? ORDER BY position`
	ListOptionsSQL   = `SELECT text, is_correct FROM options WHERE question_id = ? ORDER BY position`

	DeleteOptionsSQL   = `DELETE FROM options`
	DeleteQuestionsSQL = `DELETE FROM questions`
	DeleteQuizzesSQL   = `DELETE FROM quizzes`

	InsertQuizSQL     = `INSERT INTO quizzes (name, created_at) VALUES (?, ?)`
	InsertQuestionSQL = `INSERT INTO questions (quiz_id, text, position) VALUES (?, ?, ?)`
	InsertOptionSQL   = `INSERT INTO options (question_id, text, position, is_correct) VALUES (?, ?, ?, ?)`
)

// SQLiteStore keeps the catalog in a SQLite database.
// The schema is migrated on first use, so opening a store never fails on a bad file.
type SQLiteStore struct {
	db       *sql.DB
	logger   *logging.Logger
	migrated bool
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(conn *sql.DB, logger *logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: conn, logger: logger}
}

// Ping checks the connection to the database, ensuring it's reachable and responsive.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	err := s.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	if s.migrated {
		return nil
	}
	if err := database.Migrate(ctx, s.db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	s.migrated = true

	return nil
}

// Load returns all quizzes including their questions and options.
func (s *SQLiteStore) Load(ctx context.Context) (quiz.Catalog, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	type quizRow struct {
		id        int64
		name      string
		createdAt Timestamp
	}

	rows, err := s.db.QueryContext(ctx, ListQuizzesSQL)
	if err != nil {
		return nil, fmt.Errorf("error querying quizzes: %w", err)
	}
	defer func() {
		closeErr := rows.Close()
		if closeErr != nil {
			s.logger.Error(ctx, "error closing quizRows", logging.ErrAttr(closeErr))
		}
	}()

	var quizRows []quizRow
	for rows.Next() {
		var r quizRow
		if err = rows.Scan(&r.id, &r.name, &r.createdAt); err != nil {
			return nil, fmt.Errorf("error scanning quizRow: %w", err)
		}
		quizRows = append(quizRows, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quizRows: %w", err)
	}

	c := make(quiz.Catalog, len(quizRows))
	for _, r := range quizRows {
		questions, listErr := s.listQuestions(ctx, r.id)
		if listErr != nil {
			return nil, fmt.Errorf("error getting questions for quiz %q: %w", r.name, listErr)
		}
		c[r.name] = &quiz.Quiz{Questions: questions, CreatedAt: time.Time(r.createdAt)}
	}

	if err = validateCatalog(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// listQuestions returns the questions of a quiz in presentation order.
func (s *SQLiteStore) listQuestions(ctx context.Context, quizID int64) ([]*quiz.Question, error) {
	rows, err := s.db.QueryContext(ctx, ListQuestionsSQL, quizID)
	if err != nil {
		return nil, fmt.Errorf("error querying questions: %w", err)
	}
	defer func() {
		closeErr := rows.Close()
		if closeErr != nil {
			s.logger.Error(ctx, "error closing questionRows", logging.ErrAttr(closeErr))
		}
	}()

	var ids []int64
	var questions []*quiz.Question
	for rows.Next() {
		var id int64
		qs := &quiz.Question{}
		if err = rows.Scan(&id, &qs.Text); err != nil {
			return nil, fmt.Errorf("error scanning questionRow: %w", err)
		}
		ids = append(ids, id)
		questions = append(questions, qs)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questionRows: %w", err)
	}

	for i, qs := range questions {
		if err = s.fillOptions(ctx, ids[i], qs); err != nil {
			return nil, fmt.Errorf("error getting options for question %d: %w", ids[i], err)
		}
	}

	return questions, nil
}

// fillOptions sets the options of qs and derives the correct index from the single option flagged correct.
func (s *SQLiteStore) fillOptions(ctx context.Context, questionID int64, qs *quiz.Question) error {
	rows, err := s.db.QueryContext(ctx, ListOptionsSQL, questionID)
	if err != nil {
		return fmt.Errorf("error querying options: %w", err)
	}
	defer func() {
		closeErr := rows.Close()
		if closeErr != nil {
			s.logger.Error(ctx, "error closing optionRows", logging.ErrAttr(closeErr))
		}
	}()

	qs.CorrectIndex = quiz.NoAnswer
	for rows.Next() {
		var text string
		var correct bool
		if err = rows.Scan(&text, &correct); err != nil {
			return fmt.Errorf("error scanning optionRow: %w", err)
		}
		if correct {
			if qs.CorrectIndex != quiz.NoAnswer {
				return fmt.Errorf("%w: question %d has more than one correct option", quiz.ErrInvalidQuiz, questionID)
			}
			qs.CorrectIndex = len(qs.Options)
		}
		qs.Options = append(qs.Options, text)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating optionRows: %w", err)
	}

	return nil
}

// Save replaces every stored quiz with the quizzes in c inside a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, c quiz.Catalog) error {
	if err := validateCatalog(ctx, c); err != nil {
		return err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}

	err := database.ExecTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, query := range []string{DeleteOptionsSQL, DeleteQuestionsSQL, DeleteQuizzesSQL} {
			if _, err := tx.ExecContext(ctx, query); err != nil {
				return fmt.Errorf("error clearing quizzes: %w", err)
			}
		}
		for _, name := range c.Names() {
			if err := s.insertQuiz(ctx, tx, name, c[name]); err != nil {
				return fmt.Errorf("error inserting quiz %q: %w", name, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save quizzes: %w", err)
	}

	return nil
}

func (*SQLiteStore) insertQuiz(ctx context.Context, tx *sql.Tx, name string, qz *quiz.Quiz) error {
	createdAt := qz.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := tx.ExecContext(ctx, InsertQuizSQL, name, Timestamp(createdAt))
	if err != nil {
		return fmt.Errorf("error creating quiz: %w", err)
	}
	quizID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("error getting last insert ID: %w", err)
	}

	for pos, qs := range qz.Questions {
		result, err = tx.ExecContext(ctx, InsertQuestionSQL, quizID, qs.Text, pos)
		if err != nil {
			return fmt.Errorf("error creating question: %w", err)
		}
		questionID, idErr := result.LastInsertId()
		if idErr != nil {
			return fmt.Errorf("error getting last insert ID: %w", idErr)
		}

		for optPos, text := range qs.Options {
			_, err = tx.ExecContext(ctx, InsertOptionSQL, questionID, text, optPos, optPos == qs.CorrectIndex)
			if err != nil {
				return fmt.Errorf("error creating option: %w", err)
			}
		}
	}

	return nil
}
