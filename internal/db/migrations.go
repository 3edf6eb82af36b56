package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: speed up owner-scoped listing and keyword search.
	`CREATE INDEX IF NOT EXISTS idx_items_user ON items(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_name ON items(name)`,
}

// Migrate ensures the schema and runs all migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
