package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tripwise/internal/db"
)

// SQLiteHandoffLogRepo implements HandoffLogRepo using a SQLite database.
type SQLiteHandoffLogRepo struct {
	db db.DBTX
}

func NewSQLiteHandoffLogRepo(conn db.DBTX) *SQLiteHandoffLogRepo {
	return &SQLiteHandoffLogRepo{db: conn}
}

func (r *SQLiteHandoffLogRepo) Record(ctx context.Context, h *HandoffRecord) error {
	query := `INSERT INTO handoff_log (id, draft_id, channel, recipient, subject, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.DraftID,
		h.Channel,
		h.Recipient,
		h.Subject,
		string(h.Status),
		h.Error,
		timeToString(h.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("recording handoff: %w", err)
	}
	return nil
}

// ListRecent returns up to limit records, newest first.
func (r *SQLiteHandoffLogRepo) ListRecent(ctx context.Context, limit int) ([]*HandoffRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, draft_id, channel, recipient, subject, status, error, created_at
		FROM handoff_log ORDER BY created_at DESC, rowid DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing handoffs: %w", err)
	}
	defer rows.Close()

	var out []*HandoffRecord
	for rows.Next() {
		var h HandoffRecord
		var status, createdAt string
		if err := rows.Scan(&h.ID, &h.DraftID, &h.Channel, &h.Recipient, &h.Subject, &status, &h.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning handoff: %w", err)
		}
		h.Status = HandoffStatus(status)
		h.CreatedAt = parseTime(createdAt)
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating handoffs: %w", err)
	}
	return out, nil
}

func (r *SQLiteHandoffLogRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM handoff_log`); err != nil {
		return fmt.Errorf("clearing handoff log: %w", err)
	}
	return nil
}
