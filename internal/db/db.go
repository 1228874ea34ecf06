// Package db opens the SQLite file backing the key-value store.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// busyTimeoutMs lets a second holotask process wait for a write lock
// instead of failing with SQLITE_BUSY.
const busyTimeoutMs = 5000

func dsn(path string) string {
	if path == MemoryPath {
		return path
	}
	// DSN pragmas apply to every pooled connection.
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", path, busyTimeoutMs)
}

// OpenDB opens (creating if needed) the database at path, switches it to WAL
// and applies migrations.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		// Each connection to ":memory:" would be a separate database.
		conn.SetMaxOpenConns(1)
	}

	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return conn, nil
}
