// ABOUTME: Data migration between sportplan storage backends.
// ABOUTME: Copies every planner document from source to destination.
package storage

import (
	"fmt"
	"os"
)

// MigrateSummary lists which documents were copied and which were absent.
type MigrateSummary struct {
	Copied  []string
	Skipped []string
	Bytes   int
}

// Migrate copies all known documents from src to dst. Documents missing
// from src are skipped and leave dst untouched.
func Migrate(src, dst Store) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, key := range Keys {
		value, ok, err := src.Load(key)
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", key, err)
		}
		if !ok {
			summary.Skipped = append(summary.Skipped, key)
			continue
		}
		if err := dst.Save(key, value); err != nil {
			return nil, fmt.Errorf("write destination %s: %w", key, err)
		}
		summary.Copied = append(summary.Copied, key)
		summary.Bytes += len(value)
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
