// ABOUTME: Exercise model for gym sessions and superset group labels.
// ABOUTME: List order is performance order; the group label is a secondary attribute.
package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// SupersetLetters are the valid superset group labels.
var SupersetLetters = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// DefaultGroup is the group used when an exercise has none.
const DefaultGroup = "A"

// RPEUnset marks an exercise without a target RPE.
const RPEUnset = "-"

// IsValidGroup reports whether g is one of SupersetLetters.
func IsValidGroup(g string) bool {
	return slices.Contains(SupersetLetters, g)
}

// Exercise is one movement in a gym session.
type Exercise struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Weight string `json:"weight"`
	Sets   int    `json:"sets"`
	Reps   string `json:"reps"`
	RPE    string `json:"rpe"`
	Group  string `json:"supersetId"`
}

// NewExercise creates an exercise with default prescription values.
// An empty group falls back to DefaultGroup.
func NewExercise(group string) Exercise {
	if group == "" {
		group = DefaultGroup
	}
	return Exercise{
		ID:    NewID(),
		Sets:  3,
		Reps:  "10",
		RPE:   RPEUnset,
		Group: group,
	}
}

// GroupKey is the label used for ordering; empty sorts as DefaultGroup.
func (e Exercise) GroupKey() string {
	if e.Group == "" {
		return DefaultGroup
	}
	return e.Group
}

// SetRPE validates and assigns the exercise RPE ("-" or 1..10).
func (e *Exercise) SetRPE(v string) error {
	v = strings.TrimSpace(v)
	if v == "" || v == RPEUnset {
		e.RPE = RPEUnset
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 10 {
		return fmt.Errorf("invalid rpe %q: want 1-10 or %q", v, RPEUnset)
	}
	e.RPE = strconv.Itoa(n)
	return nil
}

// UnmarshalJSON tolerates sets stored as text.
func (e *Exercise) UnmarshalJSON(data []byte) error {
	type alias Exercise
	var in struct {
		alias
		Sets json.RawMessage `json:"sets"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*e = Exercise(in.alias)
	e.Sets, _ = decodeLooseInt(in.Sets)
	return nil
}

// CloneExercises copies an exercise list. Ids are preserved.
func CloneExercises(ex []Exercise) []Exercise {
	if ex == nil {
		return nil
	}
	return slices.Clone(ex)
}
