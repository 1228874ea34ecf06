package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	name string
	stmt string
}

// migrations are idempotent and all run on every open.
var migrations = []migration{
	{
		// One row per storage key. Values are opaque strings: the JSON user
		// document and the current-user marker.
		name: "create kv_store",
		stmt: `CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	},
}

// Migrate brings the schema up to date.
func Migrate(db *sql.DB) error {
	for _, m := range migrations {
		if _, err := db.Exec(m.stmt); err != nil {
			return fmt.Errorf("migration %q: %w", m.name, err)
		}
	}
	return nil
}
