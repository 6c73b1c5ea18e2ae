package wishlist

import (
	"context"
	"sync"
)

// MemoryStore is the default in-process snapshot store. One instance is
// shared by every consumer of the session's cache.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return Snapshot{}, false
	}
	return *m.snap, true
}

func (m *MemoryStore) Save(_ context.Context, snap Snapshot) {
	m.mu.Lock()
	m.snap = &snap
	m.mu.Unlock()
}

func (m *MemoryStore) Clear(_ context.Context) {
	m.mu.Lock()
	m.snap = nil
	m.mu.Unlock()
}
