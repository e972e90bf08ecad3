package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/tripwise/internal/db"
)

// NewTestDB opens a migrated in-memory database that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}

// FailingExecUoW is a real SQLite unit of work whose FailOn-th write inside
// the transaction returns Err, counting from 1. Reads are not counted. It
// checks that multi-write operations such as reset leave nothing behind.
type FailingExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type failingExec struct {
	db.DBTX
	calls  int
	failOn int
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.calls++
	if f.calls == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
