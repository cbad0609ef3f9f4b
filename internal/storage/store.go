// ABOUTME: Persistence port for planner documents: load and save whole values by key.
// ABOUTME: Backends (SQLite, Badger, Charm KV, memory) implement Store.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Document keys. Each is persisted independently with no integrity across them.
const (
	KeyDays      = "workout_db_v1"
	KeyProfile   = "fitness_data_v1"
	KeyWeeks     = "week_metadata_v1"
	KeyClipboard = "clipboard_v1"
)

// Keys lists every document key in migration order.
var Keys = []string{KeyDays, KeyProfile, KeyWeeks, KeyClipboard}

// Backend names accepted by config.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// Backends lists the supported backend names.
var Backends = []string{BackendSQLite, BackendBadger, BackendCharm, BackendMemory}

// ErrUnknownBackend is returned for a backend name outside Backends.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store persists string documents by key.
// This interface allows swapping implementations (e.g., for testing).
type Store interface {
	// Load returns the stored value and whether it exists.
	Load(key string) (string, bool, error)
	// Save replaces the value at key.
	Save(key, value string) error
	Close() error
}

// CheckBackend normalizes and validates a backend name. Empty means sqlite.
func CheckBackend(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BackendSQLite, nil
	}
	for _, b := range Backends {
		if b == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownBackend, name, strings.Join(Backends, ", "))
}
