// ABOUTME: JSON load/save of whole planner documents through the Store port.
// ABOUTME: Unreadable documents are logged and replaced by a fresh value.
package planner

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sportplan/internal/storage"
)

func loadDocument[T any](store storage.Store, logger *log.Logger, key string, fresh func() T) (T, error) {
	out := fresh()
	raw, ok, err := store.Load(key)
	if err != nil {
		return out, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn("discarding unreadable document", "key", key, "err", err)
		return fresh(), nil
	}
	return out, nil
}

func saveDocument(store storage.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Save(key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
