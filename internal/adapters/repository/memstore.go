package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/folio/internal/domain/model"
)

// MemStore is an in-memory Store. Ids start at 1 and increase by one per
// Create, matching the SQLite store.
type MemStore struct {
	mu      sync.RWMutex
	entries []model.FeedbackEntry
	nextID  int64
	closed  bool
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

// Create appends the entry with the next id.
func (m *MemStore) Create(_ context.Context, entry model.FeedbackEntry) (model.FeedbackEntry, error) {
	defer observe("create", time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return model.FeedbackEntry{}, ErrClosed
	}

	entry.ID = m.nextID
	m.nextID++
	m.entries = append(m.entries, entry)
	return entry, nil
}

// List returns a copy of all entries in insertion order.
func (m *MemStore) List(_ context.Context) ([]model.FeedbackEntry, error) {
	defer observe("list", time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	if len(m.entries) == 0 {
		return nil, nil
	}
	out := make([]model.FeedbackEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// Count returns the number of entries.
func (m *MemStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, ErrClosed
	}
	return len(m.entries), nil
}

// Ping fails once the store is closed.
func (m *MemStore) Ping(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Close marks the store closed. Later calls fail with ErrClosed.
func (m *MemStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
