package handoff

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/tripwise/internal/repository"
)

// Recorder keeps a history of dispatched handoffs.
type Recorder interface {
	Record(ctx context.Context, r *repository.HandoffRecord) error
}

// Dispatcher delivers handoffs in the background. Callers never see delivery
// errors; failures are logged and recorded.
type Dispatcher struct {
	channel  Channel
	recorder Recorder
	logger   *slog.Logger
	timeout  time.Duration
	now      func() time.Time
	wg       sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

func WithRecorder(r Recorder) DispatcherOption {
	return func(d *Dispatcher) { d.recorder = r }
}

func WithTimeout(t time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if t > 0 {
			d.timeout = t
		}
	}
}

func WithDispatchClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

func NewDispatcher(channel Channel, logger *slog.Logger, opts ...DispatcherOption) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{
		channel: channel,
		logger:  logger,
		timeout: 30 * time.Second,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Channel returns the name of the channel handoffs go to.
func (d *Dispatcher) Channel() string {
	return d.channel.Name()
}

// Dispatch starts delivery and returns immediately. Delivery outlives ctx
// cancellation but not the dispatcher timeout.
func (d *Dispatcher) Dispatch(ctx context.Context, h Handoff) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		d.deliver(sendCtx, h)
	}()
}

// Wait blocks until every dispatched handoff has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, h Handoff) {
	rec := &repository.HandoffRecord{
		ID:        h.ID,
		DraftID:   h.DraftID,
		Channel:   d.channel.Name(),
		Recipient: h.Recipient,
		Subject:   h.Subject,
		Status:    repository.HandoffSent,
		CreatedAt: d.now().UTC(),
	}

	if err := d.channel.Send(ctx, h); err != nil {
		rec.Status = repository.HandoffFailed
		rec.Error = err.Error()
		d.logger.WarnContext(ctx, "handoff delivery failed",
			"handoff_id", h.ID,
			"channel", d.channel.Name(),
			"error", err.Error(),
		)
	} else {
		d.logger.InfoContext(ctx, "handoff delivered",
			"handoff_id", h.ID,
			"channel", d.channel.Name(),
		)
	}

	if d.recorder == nil {
		return
	}
	if err := d.recorder.Record(ctx, rec); err != nil {
		d.logger.WarnContext(ctx, "recording handoff failed", "handoff_id", h.ID, "error", err.Error())
	}
}
