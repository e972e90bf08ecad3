package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryKVRepo is a process-local KVRepo. Nothing survives a restart.
type MemoryKVRepo struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryKVRepo() *MemoryKVRepo {
	return &MemoryKVRepo{entries: make(map[string]string)}
}

func (r *MemoryKVRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	if !ok {
		return "", fmt.Errorf("kv entry %q: %w", key, ErrNotFound)
	}
	return v, nil
}

func (r *MemoryKVRepo) Put(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = value
	return nil
}

func (r *MemoryKVRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	return nil
}
