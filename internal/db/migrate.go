package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS handoff_log (
		id         TEXT PRIMARY KEY,
		draft_id   TEXT NOT NULL DEFAULT '',
		channel    TEXT NOT NULL,
		recipient  TEXT NOT NULL DEFAULT '',
		subject    TEXT NOT NULL,
		status     TEXT NOT NULL
		           CHECK(status IN ('sent','failed')),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_handoff_log_created ON handoff_log(created_at)`,

	// Failure detail was added after the first release.
	`ALTER TABLE handoff_log ADD COLUMN error TEXT NOT NULL DEFAULT ''`,
}
