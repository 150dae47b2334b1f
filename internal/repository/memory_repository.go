package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/remindwell/storefront/internal/domain"
)

// MemoryRepository keeps encoded snapshots in process memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		snapshots: make(map[string][]byte),
	}
}

func (r *MemoryRepository) GetCart(_ context.Context, sessionID string) ([]domain.LineItem, error) {
	r.mu.RLock()
	data, ok := r.snapshots[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrCartNotFound
	}

	items, err := domain.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}
	return items, nil
}

func (r *MemoryRepository) SaveCart(_ context.Context, sessionID string, items []domain.LineItem) error {
	data, err := domain.EncodeSnapshot(items)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[sessionID] = data
	return nil
}

func (r *MemoryRepository) DeleteCart(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.snapshots[sessionID]; !ok {
		return ErrCartNotFound
	}
	delete(r.snapshots, sessionID)
	return nil
}

// PutRaw stores bytes as-is, bypassing the snapshot encoder.
func (r *MemoryRepository) PutRaw(sessionID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[sessionID] = append([]byte(nil), data...)
}
