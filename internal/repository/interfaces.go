package repository

import (
	"context"
	"time"
)

// KVRepo is a string key-value store. Get returns ErrNotFound for missing
// keys.
type KVRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// HandoffStatus is the delivery result recorded for a handoff.
type HandoffStatus string

const (
	HandoffSent   HandoffStatus = "sent"
	HandoffFailed HandoffStatus = "failed"
)

// HandoffRecord is one row of the handoff history.
type HandoffRecord struct {
	ID        string
	DraftID   string
	Channel   string
	Recipient string
	Subject   string
	Status    HandoffStatus
	Error     string
	CreatedAt time.Time
}

type HandoffLogRepo interface {
	Record(ctx context.Context, r *HandoffRecord) error
	ListRecent(ctx context.Context, limit int) ([]*HandoffRecord, error)
	DeleteAll(ctx context.Context) error
}
