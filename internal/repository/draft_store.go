package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/tripwise/internal/domain"
)

// DraftKey is the fixed key the single plan draft is stored under.
const DraftKey = "tripwise.plan_draft"

// DraftStore serializes the plan draft as one JSON snapshot in a KVRepo.
type DraftStore struct {
	kv  KVRepo
	key string
}

func NewDraftStore(kv KVRepo) *DraftStore {
	return &DraftStore{kv: kv, key: DraftKey}
}

// Load returns (nil, nil) when no snapshot exists, and ErrCorruptSnapshot when
// the stored value does not decode.
func (s *DraftStore) Load(ctx context.Context) (*domain.PlanDraft, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading draft: %w", err)
	}

	var d domain.PlanDraft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &d, nil
}

// Save replaces the stored snapshot with d.
func (s *DraftStore) Save(ctx context.Context, d *domain.PlanDraft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	return s.kv.Put(ctx, s.key, string(raw))
}

// Clear deletes the stored snapshot.
func (s *DraftStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
