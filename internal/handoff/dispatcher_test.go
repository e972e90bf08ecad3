package handoff

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/alexanderramin/tripwise/internal/repository"
	"github.com/alexanderramin/tripwise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChannel struct {
	err  error
	mu   sync.Mutex
	sent []Handoff
}

func (*stubChannel) Name() string { return "stub" }

func (c *stubChannel) Send(_ context.Context, h Handoff) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, h)
	return c.err
}

func TestDispatcher_DeliversAndRecords(t *testing.T) {
	ch := &stubChannel{}
	logs := repository.NewSQLiteHandoffLogRepo(testutil.NewTestDB(t))
	d := NewDispatcher(ch, nil, WithRecorder(logs), WithDispatchClock(testutil.FixedClock(testutil.Today)))

	d.Dispatch(context.Background(), sampleHandoff())
	d.Wait()

	require.Len(t, ch.sent, 1)
	recs, err := logs.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, repository.HandoffSent, recs[0].Status)
	assert.Equal(t, "stub", recs[0].Channel)
	assert.Equal(t, "d-1", recs[0].DraftID)
	assert.True(t, recs[0].CreatedAt.Equal(testutil.Today))
}

func TestDispatcher_FailureIsLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ch := &stubChannel{err: errors.New("relay denied")}
	logs := repository.NewSQLiteHandoffLogRepo(testutil.NewTestDB(t))
	d := NewDispatcher(ch, logger, WithRecorder(logs))

	d.Dispatch(context.Background(), sampleHandoff())
	d.Wait()

	assert.Contains(t, buf.String(), "handoff delivery failed")
	assert.Contains(t, buf.String(), "relay denied")
	recs, err := logs.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, repository.HandoffFailed, recs[0].Status)
	assert.Equal(t, "relay denied", recs[0].Error)
}

func TestDispatcher_SurvivesCancelledCaller(t *testing.T) {
	ch := &stubChannel{}
	d := NewDispatcher(ch, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d.Dispatch(ctx, sampleHandoff())
	d.Wait()
	assert.Len(t, ch.sent, 1)
	assert.Equal(t, "stub", d.Channel())
}
