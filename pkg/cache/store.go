package cache

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrCacheMiss indicates no snapshot is stored under the requested key
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the stored snapshot is invalid or corrupted
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Store holds at most one identifier snapshot per key.
type Store interface {
	// Load returns the stored snapshot or ErrCacheMiss.
	// Expiry is decided by the caller.
	Load(ctx context.Context, key Key) (*Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, key Key, snap *Snapshot) error

	// Name labels the store in metrics and logs.
	Name() string
}

// MemoryStore is an in-process single-slot Store. Saving under a new key
// replaces whatever was stored before.
type MemoryStore struct {
	mu   sync.RWMutex
	key  Key
	snap *Snapshot
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, key Key) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.snap == nil || m.key != key {
		return nil, ErrCacheMiss
	}
	return m.snap, nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, key Key, snap *Snapshot) error {
	if snap == nil {
		return ErrInvalidEntry
	}

	m.mu.Lock()
	m.key = key
	m.snap = snap
	m.mu.Unlock()

	return nil
}

// Name implements Store.
func (m *MemoryStore) Name() string { return "memory" }
