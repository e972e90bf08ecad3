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

// pragmas run on every open, in order.
var pragmas = []struct {
	stmt string
	what string
}{
	{"PRAGMA journal_mode = WAL", "setting WAL mode"},
	{"PRAGMA busy_timeout = 2000", "setting busy timeout"},
	{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
}

// OpenDB opens the tripwise database at path and brings its schema up to date.
// The parent directory is created private to the user since the file holds
// personal plan data. MemoryPath yields a database pinned to one connection,
// which tests rely on.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		conn.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}
	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return conn, nil
}
