// ABOUTME: Fitness profile repository: zones, gym PRs, and the exercise database.
// ABOUTME: Stored fields are merged over the default profile on load.
package planner

import (
	"github.com/charmbracelet/log"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/storage"
)

// ProfileRepository persists the single fitness profile document.
type ProfileRepository struct {
	store   storage.Store
	logger  *log.Logger
	profile models.FitnessProfile
}

// NewProfileRepository loads the profile, falling back to defaults.
func NewProfileRepository(store storage.Store, logger *log.Logger) (*ProfileRepository, error) {
	p, err := loadDocument(store, logger, storage.KeyProfile, models.DefaultProfile)
	if err != nil {
		return nil, err
	}
	if p.ExerciseDatabase == nil {
		p.ExerciseDatabase = models.ExerciseDatabase{}
	}
	return &ProfileRepository{store: store, logger: logger, profile: p}, nil
}

// Get returns a copy of the profile.
func (r *ProfileRepository) Get() models.FitnessProfile {
	return r.profile.Clone()
}

// Update applies fn to a copy and persists it. If fn returns an error
// nothing is saved.
func (r *ProfileRepository) Update(fn func(*models.FitnessProfile) error) error {
	next := r.profile.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	return r.Replace(next)
}

// Replace stores p wholesale.
func (r *ProfileRepository) Replace(p models.FitnessProfile) error {
	if p.ExerciseDatabase == nil {
		p.ExerciseDatabase = models.ExerciseDatabase{}
	}
	if err := saveDocument(r.store, storage.KeyProfile, p); err != nil {
		return err
	}
	r.profile = p.Clone()
	return nil
}

// Absorb adds new exercise names from a gym session. It saves only when
// the database changed.
func (r *ProfileRepository) Absorb(exercises []models.Exercise) error {
	db, changed := r.profile.ExerciseDatabase.Absorb(exercises)
	if !changed {
		return nil
	}
	next := r.profile.Clone()
	next.ExerciseDatabase = db
	if err := r.Replace(next); err != nil {
		return err
	}
	r.logger.Debug("exercise database updated", "names", len(db))
	return nil
}
