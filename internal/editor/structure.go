// ABOUTME: Cardio structure operations over steps and one-level repeat blocks.
// ABOUTME: A non-empty parentID targets the steps inside that repeat block.
package editor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/harperreed/sportplan/internal/models"
)

// AddStep appends a default step and returns its id.
func (e *Editor) AddStep() string {
	if !e.buf.Sport.IsCardio() {
		return ""
	}
	s := models.NewStep()
	e.buf.SetStructure(append(e.buf.Structure().Clone(), s))
	return s.ID
}

// AddRepeatBlock appends a default repeat block and returns its id.
func (e *Editor) AddRepeatBlock() string {
	if !e.buf.Sport.IsCardio() {
		return ""
	}
	b := models.NewRepeatBlock()
	e.buf.SetStructure(append(e.buf.Structure().Clone(), b))
	return b.ID
}

// block returns a cloned structure and the index of the block with the
// given id, or -1.
func (e *Editor) block(id string) (models.Structure, int) {
	st := e.buf.Structure().Clone()
	i := st.Index(id)
	if i < 0 {
		return st, -1
	}
	if _, ok := st[i].(models.RepeatBlock); !ok {
		return st, -1
	}
	return st, i
}

// AddStepToBlock appends a default recovery step to a block and returns
// its id, or "" when the block does not exist.
func (e *Editor) AddStepToBlock(blockID string) string {
	st, i := e.block(blockID)
	if i < 0 {
		return ""
	}
	b := st[i].(models.RepeatBlock)
	s := models.NewRecoveryStep()
	b.Steps = append(b.Steps, s)
	st[i] = b
	e.buf.SetStructure(st)
	return s.ID
}

// MoveComponent swaps a component with its neighbour, within the block
// named by parentID when it is set. Unknown ids and moves past either end
// do nothing.
func (e *Editor) MoveComponent(id string, dir Direction, parentID string) {
	if parentID != "" {
		st, bi := e.block(parentID)
		if bi < 0 {
			return
		}
		b := st[bi].(models.RepeatBlock)
		i := slices.IndexFunc(b.Steps, func(s models.Step) bool { return s.ID == id })
		j := i + int(dir)
		if i < 0 || j < 0 || j >= len(b.Steps) {
			return
		}
		b.Steps[i], b.Steps[j] = b.Steps[j], b.Steps[i]
		st[bi] = b
		e.buf.SetStructure(st)
		return
	}

	st := e.buf.Structure().Clone()
	i := st.Index(id)
	j := i + int(dir)
	if i < 0 || j < 0 || j >= len(st) {
		return
	}
	st[i], st[j] = st[j], st[i]
	e.buf.SetStructure(st)
}

// RemoveComponent deletes a component, or a step of the block named by parentID.
func (e *Editor) RemoveComponent(id, parentID string) {
	if parentID != "" {
		st, bi := e.block(parentID)
		if bi < 0 {
			return
		}
		b := st[bi].(models.RepeatBlock)
		b.Steps = slices.DeleteFunc(b.Steps, func(s models.Step) bool { return s.ID == id })
		st[bi] = b
		e.buf.SetStructure(st)
		return
	}
	st := e.buf.Structure()
	if st == nil {
		return
	}
	e.buf.SetStructure(slices.DeleteFunc(st.Clone(), func(c models.Component) bool { return c.ComponentID() == id }))
}

// StepFields lists the fields UpdateStep accepts.
var StepFields = []string{"type", "durationType", "durationValue", "intensityType", "intensityValue", "repeats"}

// UpdateStep sets one field of a step, inside the block named by parentID
// when it is set. On a top-level repeat block only "repeats" applies.
// Unknown ids are ignored.
func (e *Editor) UpdateStep(id, field, value, parentID string) error {
	if parentID == "" {
		st := e.buf.Structure()
		i := st.Index(id)
		if i < 0 {
			return nil
		}
		if _, ok := st[i].(models.RepeatBlock); ok {
			if !strings.EqualFold(field, "repeats") {
				return fmt.Errorf("repeat blocks only support the repeats field, got %q", field)
			}
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("invalid repeats %q", value)
			}
			e.SetRepeats(id, n)
			return nil
		}
	}

	st := e.buf.Structure().Clone()
	var step *models.Step
	var commit func()
	if parentID != "" {
		bi := st.Index(parentID)
		if bi < 0 {
			return nil
		}
		b, ok := st[bi].(models.RepeatBlock)
		if !ok {
			return nil
		}
		si := slices.IndexFunc(b.Steps, func(s models.Step) bool { return s.ID == id })
		if si < 0 {
			return nil
		}
		step = &b.Steps[si]
		commit = func() { st[bi] = b }
	} else {
		i := st.Index(id)
		s := st[i].(models.Step)
		step = &s
		commit = func() { st[i] = s }
	}

	if err := setStepField(step, field, value); err != nil {
		return err
	}
	commit()
	e.buf.SetStructure(st)
	return nil
}

func setStepField(s *models.Step, field, value string) error {
	switch strings.ToLower(field) {
	case "type", "kind":
		k, err := models.ParseStepKind(value)
		if err != nil {
			return err
		}
		s.Kind = k
	case "durationtype":
		k, err := models.ParseDurationKind(value)
		if err != nil {
			return err
		}
		s.DurationKind = k
	case "durationvalue", "duration":
		s.DurationValue = value
	case "intensitytype":
		k, err := models.ParseIntensityKind(value)
		if err != nil {
			return err
		}
		s.IntensityKind = k
	case "intensityvalue", "intensity":
		s.IntensityValue = value
	default:
		return fmt.Errorf("unknown step field %q (valid: %s)", field, strings.Join(StepFields, ", "))
	}
	return nil
}

// SetRepeats sets a block's repeat count, clamped to at least 1.
func (e *Editor) SetRepeats(blockID string, n int) {
	st, i := e.block(blockID)
	if i < 0 {
		return
	}
	b := st[i].(models.RepeatBlock)
	b.Repeats = max(1, n)
	st[i] = b
	e.buf.SetStructure(st)
}
