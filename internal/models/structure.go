// ABOUTME: Workout structure for running and cycling: steps and one-level repeat blocks.
// ABOUTME: A RepeatBlock holds plain Steps only, so nesting depth is fixed by the types.
package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// StepKind is the role of a step within a workout.
type StepKind string

const (
	StepWarmUp   StepKind = "W-up"
	StepRun      StepKind = "Run"
	StepRecovery StepKind = "Recovery"
	StepRest     StepKind = "Rest"
	StepCoolDown StepKind = "C-down"
	StepOther    StepKind = "Other"
)

// AllStepKinds lists step kinds in display order.
var AllStepKinds = []StepKind{StepWarmUp, StepRun, StepRecovery, StepRest, StepCoolDown, StepOther}

// DurationKind says whether a step is measured by distance or time.
type DurationKind string

const (
	DurationDistance DurationKind = "Distance"
	DurationTime     DurationKind = "Time"
)

// IntensityKind says how a step's intensity target is expressed.
type IntensityKind string

const (
	IntensityPace      IntensityKind = "Pace"
	IntensityHeartRate IntensityKind = "Heart Rate"
	IntensityNone      IntensityKind = "None"
)

// ParseStepKind matches a step kind case-insensitively. "warmup" and
// "cooldown" are accepted as aliases.
func ParseStepKind(s string) (StepKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warmup", "warm-up":
		return StepWarmUp, nil
	case "cooldown", "cool-down":
		return StepCoolDown, nil
	}
	for _, k := range AllStepKinds {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown step type: %q", s)
}

// ParseDurationKind matches "distance" or "time".
func ParseDurationKind(s string) (DurationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distance":
		return DurationDistance, nil
	case "time":
		return DurationTime, nil
	}
	return "", fmt.Errorf("unknown duration type: %q", s)
}

// ParseIntensityKind matches "pace", "heart rate"/"hr" or "none".
func ParseIntensityKind(s string) (IntensityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pace":
		return IntensityPace, nil
	case "heart rate", "heartrate", "hr":
		return IntensityHeartRate, nil
	case "none", "":
		return IntensityNone, nil
	}
	return "", fmt.Errorf("unknown intensity type: %q", s)
}

// Component is one top-level element of a Structure: a Step or a RepeatBlock.
type Component interface {
	ComponentID() string
	component()
}

// Step is a single interval.
type Step struct {
	ID             string        `json:"id"`
	Kind           StepKind      `json:"type"`
	DurationKind   DurationKind  `json:"durationType"`
	DurationValue  string        `json:"durationValue"`
	IntensityKind  IntensityKind `json:"intensityType"`
	IntensityValue string        `json:"intensityValue"`
}

// RepeatBlock repeats its steps Repeats times.
type RepeatBlock struct {
	ID      string
	Repeats int
	Steps   []Step
}

func (s Step) ComponentID() string        { return s.ID }
func (b RepeatBlock) ComponentID() string { return b.ID }
func (Step) component()                   {}
func (RepeatBlock) component()            {}

// NewStep returns the default top-level step: a 1.0 km run at pace.
func NewStep() Step {
	return Step{
		ID:            NewID(),
		Kind:          StepRun,
		DurationKind:  DurationDistance,
		DurationValue: "1.0",
		IntensityKind: IntensityPace,
	}
}

// NewRecoveryStep returns the default step appended inside a repeat block.
func NewRecoveryStep() Step {
	return Step{
		ID:            NewID(),
		Kind:          StepRecovery,
		DurationKind:  DurationTime,
		DurationValue: "02:00",
		IntensityKind: IntensityNone,
	}
}

// NewRepeatBlock returns a block repeated twice with one default step.
func NewRepeatBlock() RepeatBlock {
	return RepeatBlock{
		ID:      NewID(),
		Repeats: 2,
		Steps:   []Step{NewStep()},
	}
}

// Clone copies the block including its steps.
func (b RepeatBlock) Clone() RepeatBlock {
	b.Steps = slices.Clone(b.Steps)
	return b
}

// Structure is the ordered component list of a cardio session.
type Structure []Component

// Clone deep-copies the structure. Ids are preserved.
func (st Structure) Clone() Structure {
	if st == nil {
		return nil
	}
	out := make(Structure, len(st))
	for i, c := range st {
		if b, ok := c.(RepeatBlock); ok {
			out[i] = b.Clone()
			continue
		}
		out[i] = c
	}
	return out
}

// Index returns the position of the component with the given id, or -1.
func (st Structure) Index(id string) int {
	return slices.IndexFunc(st, func(c Component) bool { return c.ComponentID() == id })
}

type repeatBlockJSON struct {
	ID       string `json:"id"`
	IsRepeat bool   `json:"isRepeat"`
	Repeats  int    `json:"repeats"`
	Steps    []Step `json:"steps"`
}

// MarshalJSON encodes blocks with an isRepeat discriminator.
func (st Structure) MarshalJSON() ([]byte, error) {
	raw := make([]any, 0, len(st))
	for _, c := range st {
		switch v := c.(type) {
		case Step:
			raw = append(raw, v)
		case RepeatBlock:
			steps := v.Steps
			if steps == nil {
				steps = []Step{}
			}
			raw = append(raw, repeatBlockJSON{ID: v.ID, IsRepeat: true, Repeats: v.Repeats, Steps: steps})
		}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes components by the isRepeat discriminator.
// Blocks nested inside blocks are read as plain steps.
func (st *Structure) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(Structure, 0, len(items))
	for i, item := range items {
		var probe struct {
			IsRepeat bool `json:"isRepeat"`
		}
		if err := json.Unmarshal(item, &probe); err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		if probe.IsRepeat {
			var b struct {
				ID      string          `json:"id"`
				Repeats json.RawMessage `json:"repeats"`
				Steps   []Step          `json:"steps"`
			}
			if err := json.Unmarshal(item, &b); err != nil {
				return fmt.Errorf("component %d: %w", i, err)
			}
			n, ok := decodeLooseInt(b.Repeats)
			if !ok || n < 1 {
				n = 1
			}
			out = append(out, RepeatBlock{ID: b.ID, Repeats: n, Steps: b.Steps})
			continue
		}
		var s Step
		if err := json.Unmarshal(item, &s); err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		out = append(out, s)
	}
	*st = out
	return nil
}
