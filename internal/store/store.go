// Package store provides the durable quiz backends and the Library that owns the in-memory catalog.
package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/starquake/quizapp/internal/config"
	"github.com/starquake/quizapp/internal/database"
	"github.com/starquake/quizapp/internal/logging"
	"github.com/starquake/quizapp/internal/quiz"
)

// ErrConvertingValueIntoTimestamp is returned when a value cannot be converted into a Timestamp.
var ErrConvertingValueIntoTimestamp = errors.New("cannot convert value into Timestamp")

// Timestamp is a timestamp with millisecond precision. Used for SQLite type conversion.
//
//nolint:recvcheck // Mixing pointer receivers and value receivers is needed here because we are implementing sql.Scanner and driver.Valuer.
type Timestamp time.Time

// Scan converts a value to a Timestamp.
// Currently, only int64 values are supported.
func (t *Timestamp) Scan(value any) error {
	if value == nil {
		*t = Timestamp(time.Time{})

		return nil
	}

	ms, ok := value.(int64)
	if !ok {
		return fmt.Errorf("%w: %T", ErrConvertingValueIntoTimestamp, value)
	}

	*t = Timestamp(time.UnixMilli(ms).UTC())

	return nil
}

// Value converts a Timestamp to a value suitable for database storage.
func (t Timestamp) Value() (driver.Value, error) {
	return time.Time(t).UnixMilli(), nil
}

// New opens the backend selected by cfg.
//
//nolint:ireturn // The backend is chosen at runtime.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (quiz.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		conn, err := database.Open(ctx, cfg.DBURI, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("error opening database connection: %w", err)
		}

		return NewSQLiteStore(conn, logger), nil
	case config.StoreDriverYAML:
		return NewFileStore(cfg.StorePath, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedStoreDriver, cfg.StoreDriver)
	}
}

// validateCatalog returns quiz.ErrInvalidQuiz for the first quiz that does not validate.
func validateCatalog(ctx context.Context, c quiz.Catalog) error {
	for _, name := range c.Names() {
		if name == "" {
			return fmt.Errorf("%w: empty name", quiz.ErrInvalidQuiz)
		}
		qz := c[name]
		if qz == nil {
			return fmt.Errorf("%w: %q is missing", quiz.ErrInvalidQuiz, name)
		}
		if problems := qz.Valid(ctx); len(problems) > 0 {
			return fmt.Errorf("%w: %q: %v", quiz.ErrInvalidQuiz, name, problems)
		}
	}

	return nil
}
