package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/tripwise/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func putEntry(ctx context.Context, tx db.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, '2026-03-10T09:30:00Z')`, key, value)
	return err
}

func countEntries(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM kv_entries`).Scan(&n))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putEntry(ctx, tx, "tripwise.plan_draft", `{}`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO handoff_log (id, channel, subject, status, created_at)
			VALUES ('h1', 'stdout', 'Plan', 'sent', '2026-03-10T09:30:00Z')`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countEntries(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putEntry(ctx, tx, "tripwise.plan_draft", `{}`); err != nil {
			return err
		}
		return errors.New("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.Equal(t, 0, countEntries(t, database), "write should be rolled back")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = putEntry(ctx, tx, "tripwise.plan_draft", `{}`)
			panic("boom")
		})
	})
	assert.Equal(t, 0, countEntries(t, database), "write should be rolled back after panic")
}
