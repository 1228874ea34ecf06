package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/holotask/internal/db"
)

// NewTestDB opens a migrated in-memory database that is closed at the end of
// the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW returns a UnitOfWork over database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
