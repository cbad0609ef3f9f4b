// ABOUTME: Charm KV backend with automatic cloud sync after writes.
// ABOUTME: Falls back to read-only mode when another process holds the lock.
package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

// CharmDBName is the Charm KV database holding the plan.
const CharmDBName = "sportplan"

// CharmHost is the Charm server used unless CHARM_HOST is set.
const CharmHost = "charm.2389.dev"

// CharmStore keeps documents in a Charm KV database.
type CharmStore struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// OpenCharm opens the Charm KV database, pulling remote data on startup.
func OpenCharm() (*CharmStore, error) {
	if err := useCharmHost(); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaultsFallback(CharmDBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	s := &CharmStore{kv: db, autoSync: true}
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return s, nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (s *CharmStore) IsReadOnly() bool {
	return s.kv.IsReadOnly()
}

// SetAutoSync enables or disables automatic sync after writes.
func (s *CharmStore) SetAutoSync(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoSync = enabled
}

// Sync synchronizes local state with Charm Cloud.
func (s *CharmStore) Sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kv.IsReadOnly() {
		return nil
	}
	return s.kv.Sync()
}

// Load implements Store.
func (s *CharmStore) Load(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, err := s.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return string(val), true, nil
}

// Save implements Store.
func (s *CharmStore) Save(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv.IsReadOnly() {
		return fmt.Errorf("cannot write: database is locked by another process (MCP server?)")
	}
	if err := s.kv.Set([]byte(key), []byte(value)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if s.autoSync {
		_ = s.kv.Sync()
	}
	return nil
}

// Close closes the KV database connection.
func (s *CharmStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv != nil {
		return s.kv.Close()
	}
	return nil
}

func useCharmHost() error {
	if os.Getenv("CHARM_HOST") != "" {
		return nil
	}
	if err := os.Setenv("CHARM_HOST", CharmHost); err != nil {
		return fmt.Errorf("set charm host: %w", err)
	}
	return nil
}

// CharmID returns the Charm account id linked to this device.
func CharmID() (string, error) {
	if err := useCharmHost(); err != nil {
		return "", err
	}
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}
