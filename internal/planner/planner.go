// ABOUTME: Planner ties the day, week and profile repositories to one store.
// ABOUTME: Every committed mutation persists before returning; failures keep prior state.
package planner

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/storage"
)

// Planner is the entry point for all planning operations.
type Planner struct {
	mu        sync.Mutex
	store     storage.Store
	logger    *log.Logger
	days      *DayRepository
	weeks     *WeekRepository
	profile   *ProfileRepository
	clipboard *models.Session
}

// Open loads all documents from store. Unreadable documents start empty.
func Open(store storage.Store, logger *log.Logger) (*Planner, error) {
	days, err := NewDayRepository(store, logger)
	if err != nil {
		return nil, fmt.Errorf("open days: %w", err)
	}
	weeks, err := NewWeekRepository(store, logger)
	if err != nil {
		return nil, fmt.Errorf("open week metadata: %w", err)
	}
	profile, err := NewProfileRepository(store, logger)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}

	p := &Planner{store: store, logger: logger, days: days, weeks: weeks, profile: profile}

	clip, err := loadDocument(store, logger, storage.KeyClipboard, func() *models.Session { return nil })
	if err != nil {
		return nil, fmt.Errorf("open clipboard: %w", err)
	}
	p.clipboard = clip

	logger.Debug("planner opened", "days", days.Len())
	return p, nil
}

// Day returns the Day for a date key, synthesized if absent.
func (p *Planner) Day(key string) (models.Day, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.days.Get(key)
}

// Session returns the session at ref.
func (p *Planner) Session(ref SlotRef) (models.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := ref.validate(); err != nil {
		return models.Session{}, err
	}
	d, err := p.days.Get(ref.Date)
	if err != nil {
		return models.Session{}, err
	}
	return d.Session(ref.Slot), nil
}

// SaveSession replaces the session at ref wholesale. Gym exercise names
// are added to the exercise database on a best-effort basis: the session
// is committed even when that update fails.
func (p *Planner) SaveSession(ref SlotRef, s models.Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := ref.validate(); err != nil {
		return err
	}
	if _, err := p.days.Update(ref.Date, func(d *models.Day) { d.SetSession(ref.Slot, s.Clone()) }); err != nil {
		return fmt.Errorf("save session %s: %w", ref, err)
	}
	if s.Sport == models.SportGym {
		if err := p.profile.Absorb(s.Exercises()); err != nil {
			p.logger.Warn("exercise database not updated", "ref", ref.String(), "err", err)
		}
	}
	p.logger.Debug("session saved", "ref", ref.String(), "sport", string(s.Sport))
	return nil
}

// ClearSession resets the session at ref to empty, keeping its id.
func (p *Planner) ClearSession(ref SlotRef) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := ref.validate(); err != nil {
		return err
	}
	_, err := p.days.Update(ref.Date, func(d *models.Day) {
		s := d.Session(ref.Slot)
		s.Clear()
		d.SetSession(ref.Slot, s)
	})
	if err != nil {
		return fmt.Errorf("clear session %s: %w", ref, err)
	}
	return nil
}

// Swap exchanges the sessions at a and b.
func (p *Planner) Swap(a, b SlotRef) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.days.Swap(a, b); err != nil {
		return fmt.Errorf("swap %s and %s: %w", a, b, err)
	}
	return nil
}

// Copy puts the session at ref on the clipboard and persists it.
func (p *Planner) Copy(ref SlotRef) (models.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := ref.validate(); err != nil {
		return models.Session{}, err
	}
	d, err := p.days.Get(ref.Date)
	if err != nil {
		return models.Session{}, err
	}
	clip := Copy(d.Session(ref.Slot))
	if err := saveDocument(p.store, storage.KeyClipboard, clip); err != nil {
		return models.Session{}, fmt.Errorf("copy session %s: %w", ref, err)
	}
	p.clipboard = &clip
	return clip.Clone(), nil
}

// Clipboard returns the copied session, if any.
func (p *Planner) Clipboard() (models.Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clipboard == nil {
		return models.Session{}, false
	}
	return p.clipboard.Clone(), true
}

// Paste writes the clipboard into the slot at ref and returns the result.
func (p *Planner) Paste(ref SlotRef) (models.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clipboard == nil {
		return models.Session{}, fmt.Errorf("paste session: clipboard is empty")
	}
	if _, err := ref.validate(); err != nil {
		return models.Session{}, err
	}
	var pasted models.Session
	_, err := p.days.Update(ref.Date, func(d *models.Day) {
		pasted = Paste(*p.clipboard, d.Session(ref.Slot).ID)
		d.SetSession(ref.Slot, pasted)
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("paste session %s: %w", ref, err)
	}
	return pasted, nil
}

// CycleStatus advances the day's status and returns the new value.
func (p *Planner) CycleStatus(key string) (models.Status, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, err := p.days.Update(key, func(d *models.Day) { d.Status = d.Status.Next() })
	if err != nil {
		return "", fmt.Errorf("cycle status: %w", err)
	}
	return d.Status, nil
}

// UpdateDay applies fn to the day at key and commits the result in one save.
func (p *Planner) UpdateDay(key string, fn func(*models.Day)) (models.Day, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, err := p.days.Update(key, fn)
	if err != nil {
		return models.Day{}, fmt.Errorf("update day: %w", err)
	}
	return d, nil
}

// SetStatus sets the day's status.
func (p *Planner) SetStatus(key string, st models.Status) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.days.Update(key, func(d *models.Day) { d.Status = st }); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

// SetCNS sets the day's CNS fatigue level; CNSUnset clears it.
func (p *Planner) SetCNS(key string, level models.CNSFatigue) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.days.Update(key, func(d *models.Day) { d.CNSFatigue = level }); err != nil {
		return fmt.Errorf("set cns fatigue: %w", err)
	}
	return nil
}

// ToggleCNS selects a level, or clears it when already selected.
func (p *Planner) ToggleCNS(key string, level models.CNSFatigue) (models.CNSFatigue, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, err := p.days.Update(key, func(d *models.Day) { d.ToggleCNS(level) })
	if err != nil {
		return "", fmt.Errorf("toggle cns fatigue: %w", err)
	}
	return d.CNSFatigue, nil
}

// SetNote replaces the day's free-text note.
func (p *Planner) SetNote(key, note string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.days.Update(key, func(d *models.Day) { d.DailyNotes = note }); err != nil {
		return fmt.Errorf("set note: %w", err)
	}
	return nil
}

// Phase returns the periodization phase of the week containing key.
func (p *Planner) Phase(key string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.weeks.Phase(key)
}

// SetPhase sets or clears the phase of the week containing key.
func (p *Planner) SetPhase(key, phase string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.weeks.SetPhase(key, phase); err != nil {
		return fmt.Errorf("set phase: %w", err)
	}
	return nil
}

// Profile returns a copy of the fitness profile.
func (p *Planner) Profile() models.FitnessProfile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile.Get()
}

// UpdateProfile applies fn to the profile and saves it.
func (p *Planner) UpdateProfile(fn func(*models.FitnessProfile) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.profile.Update(fn); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// ExerciseNames returns the known exercise names, optionally filtered.
func (p *Planner) ExerciseNames(filter string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	db := p.profile.Get().ExerciseDatabase
	if filter == "" {
		return db
	}
	return db.Filter(filter)
}

// AddExerciseName adds a name; it reports false for blanks and duplicates.
func (p *Planner) AddExerciseName(name string) (bool, error) {
	var added bool
	err := p.UpdateProfile(func(fp *models.FitnessProfile) error {
		fp.ExerciseDatabase, added = fp.ExerciseDatabase.Add(name)
		return nil
	})
	return added, err
}

// RemoveExerciseName removes an exact name; it reports false when absent.
func (p *Planner) RemoveExerciseName(name string) (bool, error) {
	var removed bool
	err := p.UpdateProfile(func(fp *models.FitnessProfile) error {
		fp.ExerciseDatabase, removed = fp.ExerciseDatabase.Remove(name)
		return nil
	})
	return removed, err
}

// State is a full copy of the three planner documents.
type State struct {
	Days    map[string]models.Day
	Profile models.FitnessProfile
	Weeks   map[string]models.WeekMetadata
}

// Snapshot returns a copy of all documents.
func (p *Planner) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		Days:    p.days.Snapshot(),
		Profile: p.profile.Get(),
		Weeks:   p.weeks.Snapshot(),
	}
}

// Restore replaces the day store, and the profile and week metadata when
// given. If any write fails, documents already replaced are rolled back.
func (p *Planner) Restore(days map[string]models.Day, profile *models.FitnessProfile, weeks map[string]models.WeekMetadata) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	prevDays := p.days.Snapshot()
	prevProfile := p.profile.Get()

	if err := p.days.Replace(days); err != nil {
		return fmt.Errorf("restore days: %w", err)
	}
	if profile != nil {
		if err := p.profile.Replace(*profile); err != nil {
			p.rollback(prevDays, nil)
			return fmt.Errorf("restore profile: %w", err)
		}
	}
	if weeks != nil {
		if err := p.weeks.Replace(weeks); err != nil {
			restoreProfile := &prevProfile
			if profile == nil {
				restoreProfile = nil
			}
			p.rollback(prevDays, restoreProfile)
			return fmt.Errorf("restore week metadata: %w", err)
		}
	}
	p.logger.Info("restore applied", "days", len(days), "profile", profile != nil, "weeks", weeks != nil)
	return nil
}

func (p *Planner) rollback(days map[string]models.Day, profile *models.FitnessProfile) {
	if err := p.days.Replace(days); err != nil {
		p.logger.Error("rollback days failed", "err", err)
	}
	if profile != nil {
		if err := p.profile.Replace(*profile); err != nil {
			p.logger.Error("rollback profile failed", "err", err)
		}
	}
}
