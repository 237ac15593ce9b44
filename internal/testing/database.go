package testing

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/fgen/journal"
)

// CreateTestDB creates an in-memory SQLite test database.
// Automatically registers cleanup via t.Cleanup().
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CreateTestJournal returns a journal on a migrated in-memory database.
func CreateTestJournal(t *testing.T) *journal.Journal {
	t.Helper()

	db := CreateTestDB(t)
	log := zaptest.NewLogger(t).Sugar()
	if err := journal.Migrate(db, log); err != nil {
		t.Fatalf("Failed to migrate test journal: %v", err)
	}
	return journal.New(db, log)
}
