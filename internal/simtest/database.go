// Package simtest provides test helpers shared across the simulator's
// packages: an in-memory results database and assertions over a
// simcore.SimModel run, adapted from the teacher's internal/testing package.
package simtest

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/schedsim/marisa/db"
)

// NewTestDB creates an in-memory SQLite database with the experiment
// store's schema applied, and registers its cleanup via t.Cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := db.Migrate(database, nil); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}
