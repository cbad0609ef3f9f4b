// ABOUTME: Week metadata repository keyed by each week's Monday.
// ABOUTME: Absence means no phase; entries are never synthesized.
package planner

import (
	"maps"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/storage"
)

// WeekRepository stores periodization phases per week.
type WeekRepository struct {
	store  storage.Store
	logger *log.Logger
	weeks  map[string]models.WeekMetadata
}

// NewWeekRepository loads the week metadata document from store.
func NewWeekRepository(store storage.Store, logger *log.Logger) (*WeekRepository, error) {
	weeks, err := loadDocument(store, logger, storage.KeyWeeks, func() map[string]models.WeekMetadata {
		return map[string]models.WeekMetadata{}
	})
	if err != nil {
		return nil, err
	}
	if weeks == nil {
		weeks = map[string]models.WeekMetadata{}
	}
	return &WeekRepository{store: store, logger: logger, weeks: weeks}, nil
}

// weekKey maps any date key to its Monday's key.
func weekKey(key string) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return DateKey(MondayOf(t)), nil
}

// Phase returns the phase of the week containing the date, or "".
func (r *WeekRepository) Phase(key string) (string, error) {
	wk, err := weekKey(key)
	if err != nil {
		return "", err
	}
	return r.weeks[wk].Periodization, nil
}

// SetPhase assigns a phase to the week containing the date. An empty
// phase removes the entry.
func (r *WeekRepository) SetPhase(key, phase string) error {
	wk, err := weekKey(key)
	if err != nil {
		return err
	}
	next := maps.Clone(r.weeks)
	phase = strings.TrimSpace(phase)
	if phase == "" {
		delete(next, wk)
	} else {
		next[wk] = models.WeekMetadata{Periodization: phase}
	}
	if err := saveDocument(r.store, storage.KeyWeeks, next); err != nil {
		return err
	}
	r.weeks = next
	r.logger.Debug("week phase saved", "week", wk, "phase", phase)
	return nil
}

// Snapshot returns a copy of all week metadata.
func (r *WeekRepository) Snapshot() map[string]models.WeekMetadata {
	return maps.Clone(r.weeks)
}

// Replace swaps all week metadata.
func (r *WeekRepository) Replace(weeks map[string]models.WeekMetadata) error {
	next := maps.Clone(weeks)
	if next == nil {
		next = map[string]models.WeekMetadata{}
	}
	if err := saveDocument(r.store, storage.KeyWeeks, next); err != nil {
		return err
	}
	r.weeks = next
	return nil
}
