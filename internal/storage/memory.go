// ABOUTME: In-memory Store for tests and the memory backend.
// ABOUTME: Optionally fails saves on demand to exercise error paths.
package storage

import (
	"maps"
	"sync"
)

// MemoryStore is a map-backed Store. The zero value is not usable; call NewMemoryStore.
type MemoryStore struct {
	mu      sync.RWMutex
	data    map[string]string
	saveErr error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

// Load implements Store.
func (m *MemoryStore) Load(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Save implements Store.
func (m *MemoryStore) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = value
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }

// FailSaves makes every subsequent Save return err. Pass nil to stop.
func (m *MemoryStore) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Snapshot returns a copy of all stored documents.
func (m *MemoryStore) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data)
}
