// ABOUTME: Session editor: a private edit buffer with Summary and Edit modes.
// ABOUTME: Nothing reaches the planner until Save; Cancel discards the buffer.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/planner"
	"github.com/harperreed/sportplan/internal/stats"
)

// Mode is the editor's display state.
type Mode int

const (
	ModeSummary Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "summary"
}

// Direction is a one-position move.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// ParseDirection accepts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown direction: %q (use up or down)", s)
}

// ErrClosed is returned when using an editor after Save or Cancel.
var ErrClosed = errors.New("editor closed")

// Editor holds an uncommitted copy of one session.
type Editor struct {
	buf    models.Session
	mode   Mode
	closed bool
}

// Open starts editing a copy of s. Gym and cardio sessions without a
// payload get an empty one. The editor opens in Summary mode when the
// session already has exercises or structure, else in Edit mode.
func Open(s models.Session) *Editor {
	buf := s.Clone()
	switch {
	case buf.Sport == models.SportGym && buf.Exercises() == nil:
		buf.SetExercises([]models.Exercise{})
	case buf.Sport.IsCardio() && buf.Structure() == nil:
		buf.SetStructure(models.Structure{})
	}
	mode := ModeEdit
	if buf.HasContent() {
		mode = ModeSummary
	}
	return &Editor{buf: buf, mode: mode}
}

// Session returns a copy of the buffer.
func (e *Editor) Session() models.Session {
	return e.buf.Clone()
}

// Mode returns the current mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// SetMode switches between Summary and Edit.
func (e *Editor) SetMode(m Mode) {
	e.mode = m
}

// Stats estimates distance and time for the buffer.
func (e *Editor) Stats() stats.Stats {
	return stats.Compute(e.buf)
}

// SetSport switches the sport, dropping the sub-type and payload, and
// always enters Edit mode.
func (e *Editor) SetSport(sport models.Sport) {
	e.buf.SetSport(sport)
	e.mode = ModeEdit
}

// SetSubType sets the free-text sub-type.
func (e *Editor) SetSubType(v string) { e.buf.SubType = v }

// SetTime sets the scheduled time of day.
func (e *Editor) SetTime(v string) { e.buf.Time = v }

// SetNotes sets the session notes.
func (e *Editor) SetNotes(v string) { e.buf.Notes = v }

// SetPeriodization sets the session-level phase label.
func (e *Editor) SetPeriodization(v string) { e.buf.Periodization = v }

// SetRPE sets the perceived exertion; nil clears it.
func (e *Editor) SetRPE(rpe *int) {
	if rpe == nil {
		e.buf.RPE = nil
		return
	}
	e.buf.WithRPE(*rpe)
}

// Clear empties the buffer, keeping the session id, and enters Edit mode.
func (e *Editor) Clear() {
	e.buf.Clear()
	e.mode = ModeEdit
}

// Paste replaces the buffer with the clipboard session and enters Summary mode.
func (e *Editor) Paste(clip models.Session) {
	e.buf = planner.Paste(clip, e.buf.ID)
	e.mode = ModeSummary
}

// Save closes the editor and returns the buffer for the caller to commit.
func (e *Editor) Save() (models.Session, error) {
	if e.closed {
		return models.Session{}, ErrClosed
	}
	e.closed = true
	return e.buf.Clone(), nil
}

// Cancel closes the editor and discards the buffer.
func (e *Editor) Cancel() {
	e.closed = true
	e.buf = models.Session{}
}
