// ABOUTME: Gym exercise list operations: add, regroup, move, remove and update.
// ABOUTME: The list is sorted by group only after add-without-group and regroup.
package editor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/harperreed/sportplan/internal/models"
)

func sortByGroup(ex []models.Exercise) {
	slices.SortStableFunc(ex, func(a, b models.Exercise) int {
		return strings.Compare(a.GroupKey(), b.GroupKey())
	})
}

func checkGroup(group string) error {
	if !models.IsValidGroup(group) {
		return fmt.Errorf("invalid superset group %q: want one of %s", group, strings.Join(models.SupersetLetters, ""))
	}
	return nil
}

// AddExercise adds a default exercise and returns its id. With a group,
// it goes right after the last exercise of that group (or at the end);
// without one it is appended to group A and the list is re-sorted.
// Non-gym sessions are left alone and yield "".
func (e *Editor) AddExercise(group string) (string, error) {
	if e.buf.Sport != models.SportGym {
		return "", nil
	}
	if group != "" {
		if err := checkGroup(group); err != nil {
			return "", err
		}
	}
	ex := slices.Clone(e.buf.Exercises())
	added := models.NewExercise(group)

	if group == "" {
		ex = append(ex, added)
		sortByGroup(ex)
	} else {
		at := len(ex)
		for i := len(ex) - 1; i >= 0; i-- {
			if ex[i].Group == group {
				at = i + 1
				break
			}
		}
		ex = slices.Insert(ex, at, added)
	}
	e.buf.SetExercises(ex)
	return added.ID, nil
}

// Regroup moves an exercise to another superset group and re-sorts.
// Unknown ids are ignored.
func (e *Editor) Regroup(id, group string) error {
	if err := checkGroup(group); err != nil {
		return err
	}
	ex := slices.Clone(e.buf.Exercises())
	i := slices.IndexFunc(ex, func(x models.Exercise) bool { return x.ID == id })
	if i < 0 {
		return nil
	}
	ex[i].Group = group
	sortByGroup(ex)
	e.buf.SetExercises(ex)
	return nil
}

// MoveExercise swaps the exercise at index with its neighbour. Moves past
// either end do nothing.
func (e *Editor) MoveExercise(index int, dir Direction) {
	ex := slices.Clone(e.buf.Exercises())
	j := index + int(dir)
	if index < 0 || index >= len(ex) || j < 0 || j >= len(ex) {
		return
	}
	ex[index], ex[j] = ex[j], ex[index]
	e.buf.SetExercises(ex)
}

// RemoveExercise deletes an exercise by id. Unknown ids are ignored.
func (e *Editor) RemoveExercise(id string) {
	ex := e.buf.Exercises()
	if ex == nil {
		return
	}
	e.buf.SetExercises(slices.DeleteFunc(slices.Clone(ex), func(x models.Exercise) bool { return x.ID == id }))
}

// ExerciseFields lists the fields UpdateExercise accepts.
var ExerciseFields = []string{"name", "weight", "sets", "reps", "rpe", "group"}

// UpdateExercise sets one field of an exercise. Unknown ids are ignored.
// Changing the group here does not re-sort; use Regroup for that.
func (e *Editor) UpdateExercise(id, field, value string) error {
	ex := slices.Clone(e.buf.Exercises())
	i := slices.IndexFunc(ex, func(x models.Exercise) bool { return x.ID == id })
	if i < 0 {
		return nil
	}
	x := &ex[i]
	switch strings.ToLower(field) {
	case "name":
		x.Name = value
	case "weight":
		x.Weight = value
	case "sets":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("invalid sets %q", value)
		}
		x.Sets = n
	case "reps":
		x.Reps = value
	case "rpe":
		if err := x.SetRPE(value); err != nil {
			return err
		}
	case "group", "superset", "supersetid":
		if err := checkGroup(value); err != nil {
			return err
		}
		x.Group = value
	default:
		return fmt.Errorf("unknown exercise field %q (valid: %s)", field, strings.Join(ExerciseFields, ", "))
	}
	e.buf.SetExercises(ex)
	return nil
}
