package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/tripwise/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(subject string, status HandoffStatus, at time.Time) *HandoffRecord {
	return &HandoffRecord{
		ID:        uuid.New().String(),
		DraftID:   "draft-1",
		Channel:   "smtp",
		Recipient: "advisor@example.org",
		Subject:   subject,
		Status:    status,
		CreatedAt: at,
	}
}

func TestHandoffLogRepo_ListRecentNewestFirst(t *testing.T) {
	repo := NewSQLiteHandoffLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := newRecord("first", HandoffSent, testutil.Today)
	second := newRecord("second", HandoffFailed, testutil.Today.Add(time.Hour))
	second.Error = "connection refused"
	require.NoError(t, repo.Record(ctx, first))
	require.NoError(t, repo.Record(ctx, second))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Subject)
	assert.Equal(t, HandoffFailed, got[0].Status)
	assert.Equal(t, "connection refused", got[0].Error)
	assert.True(t, got[1].CreatedAt.Equal(testutil.Today))
}

func TestHandoffLogRepo_ListRecentLimit(t *testing.T) {
	repo := NewSQLiteHandoffLogRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Record(ctx, newRecord("plan", HandoffSent, testutil.Today.Add(time.Duration(i)*time.Minute))))
	}

	got, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestHandoffLogRepo_RejectsUnknownStatus(t *testing.T) {
	repo := NewSQLiteHandoffLogRepo(testutil.NewTestDB(t))
	err := repo.Record(context.Background(), newRecord("plan", "queued", testutil.Today))
	assert.Error(t, err)
}

func TestClearPlanData(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	kv := NewSQLiteKVRepo(database)
	logs := NewSQLiteHandoffLogRepo(database)
	require.NoError(t, kv.Put(ctx, DraftKey, `{}`))
	require.NoError(t, logs.Record(ctx, newRecord("plan", HandoffSent, testutil.Today)))

	require.NoError(t, ClearPlanData(ctx, testutil.NewTestUoW(database)))

	_, err := kv.Get(ctx, DraftKey)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := logs.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClearPlanData_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	kv := NewSQLiteKVRepo(database)
	logs := NewSQLiteHandoffLogRepo(database)
	require.NoError(t, kv.Put(ctx, DraftKey, `{}`))
	require.NoError(t, logs.Record(ctx, newRecord("plan", HandoffSent, testutil.Today)))

	boom := errors.New("injected")
	uow := &testutil.FailingExecUoW{DB: database, FailOn: 2, Err: boom}
	err := ClearPlanData(ctx, uow)
	assert.ErrorIs(t, err, boom)

	got, err := kv.Get(ctx, DraftKey)
	require.NoError(t, err, "draft delete should be rolled back")
	assert.Equal(t, `{}`, got)
}
