// ABOUTME: Fitness profile: threshold zones, gym PRs, and the exercise name database.
// ABOUTME: The exercise database feeds autocomplete only; it is never a foreign key.
package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Zone is one threshold: a pace (running) or power (cycling) plus heart rate.
type Zone struct {
	PaceOrPower string `json:"paceOrPower"`
	HR          string `json:"hr"`
}

// Zones holds the three thresholds of a cardio sport.
type Zones struct {
	LT1 Zone `json:"lt1"`
	LT2 Zone `json:"lt2"`
	VO2 Zone `json:"vo2"`
}

// ZoneNames lists the valid zone keys.
var ZoneNames = []string{"lt1", "lt2", "vo2"}

// Zone returns a pointer to the named zone, or an error for unknown names.
func (z *Zones) Zone(name string) (*Zone, error) {
	switch strings.ToLower(name) {
	case "lt1":
		return &z.LT1, nil
	case "lt2":
		return &z.LT2, nil
	case "vo2":
		return &z.VO2, nil
	}
	return nil, fmt.Errorf("unknown zone: %q (use lt1, lt2 or vo2)", name)
}

// GymPR is a personal record used as a reference weight.
type GymPR struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Weight string `json:"weight"`
}

// NewGymPR creates a PR entry with a fresh id.
func NewGymPR(name, weight string) GymPR {
	return GymPR{ID: uuid.NewString(), Name: name, Weight: weight}
}

// FitnessProfile is the athlete's reference data.
type FitnessProfile struct {
	Running          Zones            `json:"running"`
	Cycling          Zones            `json:"cycling"`
	Gym              []GymPR          `json:"gym"`
	ExerciseDatabase ExerciseDatabase `json:"exerciseDatabase"`
}

// DefaultProfile returns the profile used when nothing is stored.
func DefaultProfile() FitnessProfile {
	return FitnessProfile{
		Gym: []GymPR{
			{ID: "1", Name: "Squat"},
			{ID: "2", Name: "Bench Press"},
			{ID: "3", Name: "Deadlift"},
			{ID: "4", Name: "Pull Up"},
		},
		ExerciseDatabase: ExerciseDatabase{},
	}
}

// Clone returns a deep copy.
func (p FitnessProfile) Clone() FitnessProfile {
	p.Gym = slices.Clone(p.Gym)
	p.ExerciseDatabase = slices.Clone(p.ExerciseDatabase)
	return p
}

// PacePresets returns the non-empty running threshold paces.
func (p FitnessProfile) PacePresets() []string {
	return nonEmpty(p.Running.LT1.PaceOrPower, p.Running.LT2.PaceOrPower, p.Running.VO2.PaceOrPower)
}

// HeartRatePresets returns the non-empty running threshold heart rates.
func (p FitnessProfile) HeartRatePresets() []string {
	return nonEmpty(p.Running.LT1.HR, p.Running.LT2.HR, p.Running.VO2.HR)
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ExerciseDatabase is a set of known exercise names, unique case-insensitively.
type ExerciseDatabase []string

// Contains reports whether name is present, ignoring case.
func (db ExerciseDatabase) Contains(name string) bool {
	return slices.ContainsFunc(db, func(n string) bool { return strings.EqualFold(n, name) })
}

// Add inserts a trimmed name unless it is empty or already present.
// The result is sorted. ok reports whether the set changed.
func (db ExerciseDatabase) Add(name string) (out ExerciseDatabase, ok bool) {
	name = strings.TrimSpace(name)
	if name == "" || db.Contains(name) {
		return db, false
	}
	out = append(slices.Clone(db), name)
	out.sort()
	return out, true
}

// Remove deletes the exact name. Existing exercises that use it are untouched.
func (db ExerciseDatabase) Remove(name string) (out ExerciseDatabase, ok bool) {
	i := slices.Index(db, name)
	if i < 0 {
		return db, false
	}
	return slices.Delete(slices.Clone(db), i, i+1), true
}

// Filter returns names containing substr, ignoring case.
func (db ExerciseDatabase) Filter(substr string) []string {
	substr = strings.ToLower(substr)
	var out []string
	for _, n := range db {
		if strings.Contains(strings.ToLower(n), substr) {
			out = append(out, n)
		}
	}
	return out
}

// Absorb adds every new exercise name from a saved gym session.
func (db ExerciseDatabase) Absorb(exercises []Exercise) (out ExerciseDatabase, changed bool) {
	out = db
	for _, ex := range exercises {
		var added bool
		out, added = out.Add(ex.Name)
		changed = changed || added
	}
	return out, changed
}

func (db ExerciseDatabase) sort() {
	slices.SortFunc(db, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}
