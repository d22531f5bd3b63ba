// Package dbtest provides helpers for testing database code.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the sqlite driver

	"github.com/starquake/quizapp/internal/config"
	"github.com/starquake/quizapp/internal/database"
)

// TempURI returns the URI of a SQLite database file in a temporary directory that is removed with the test.
func TempURI(t *testing.T) string {
	t.Helper()

	return config.SQLiteURI(filepath.Join(t.TempDir(), "quizapp-test.sqlite"))
}

// Open opens a database connection with migrations applied.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	db := OpenUnmigrated(t)

	err := goose.UpContext(t.Context(), db, ".")
	if err != nil {
		t.Fatalf("error running migrations: %v", err)
	}

	return db
}

// OpenUnmigrated opens a database connection without migrations applied.
func OpenUnmigrated(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open(database.DriverName, ":memory:")
	if err != nil {
		t.Fatalf("error opening SQLite database: %v", err)
	}
	if _, err := db.ExecContext(t.Context(), "PRAGMA foreign_keys = ON;"); err != nil {
		t.Fatalf("error enabling foreign keys: %v", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("error closing database: %v", err)
		}
	})

	return db
}
