// ABOUTME: Session model: one planned workout in a morning or evening slot.
// ABOUTME: Sport-specific content is a tagged payload (gym exercises or cardio structure).
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Sport is the training type of a session. The zero value means unset.
type Sport string

const (
	SportNone     Sport = ""
	SportGym      Sport = "Gym"
	SportRunning  Sport = "Running"
	SportCycling  Sport = "Cycling"
	SportFootball Sport = "Football"
	SportRest     Sport = "Rest"
	SportOther    Sport = "Other"
)

// AllSports lists the selectable sports in display order.
var AllSports = []Sport{SportGym, SportRunning, SportCycling, SportFootball, SportRest, SportOther}

// ParseSport matches a sport name case-insensitively. Empty input yields SportNone.
func ParseSport(s string) (Sport, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return SportNone, nil
	}
	for _, sp := range AllSports {
		if strings.EqualFold(string(sp), s) {
			return sp, nil
		}
	}
	return SportNone, fmt.Errorf("unknown sport: %q", s)
}

// IsCardio reports whether the sport carries a workout structure.
func (s Sport) IsCardio() bool {
	return s == SportRunning || s == SportCycling
}

// Detail is the sport-specific payload of a session.
// Only GymDetail and CardioDetail implement it.
type Detail interface {
	detail()
	clone() Detail
}

// GymDetail holds the ordered exercise list of a Gym session.
type GymDetail struct {
	Exercises []Exercise
}

// CardioDetail holds the interval structure of a Running or Cycling session.
type CardioDetail struct {
	Structure Structure
}

func (GymDetail) detail()    {}
func (CardioDetail) detail() {}

func (g GymDetail) clone() Detail {
	return GymDetail{Exercises: CloneExercises(g.Exercises)}
}

func (c CardioDetail) clone() Detail {
	return CardioDetail{Structure: c.Structure.Clone()}
}

// detailFor returns the empty payload matching a sport, or nil.
func detailFor(s Sport) Detail {
	switch {
	case s == SportGym:
		return GymDetail{Exercises: []Exercise{}}
	case s.IsCardio():
		return CardioDetail{Structure: Structure{}}
	default:
		return nil
	}
}

// Session is one workout occupying a Day slot.
type Session struct {
	ID            string
	Sport         Sport
	SubType       string
	Periodization string
	Time          string
	RPE           *int
	Notes         string
	Detail        Detail
}

// NewSession returns an empty session with the given id.
func NewSession(id string) Session {
	return Session{ID: id}
}

// SetSport switches the sport, discarding the sub-type and any payload
// that does not belong to the new sport.
func (s *Session) SetSport(sport Sport) {
	s.Sport = sport
	s.SubType = ""
	s.Detail = detailFor(sport)
}

// Exercises returns the gym exercise list, or nil for non-gym sessions.
func (s Session) Exercises() []Exercise {
	if g, ok := s.Detail.(GymDetail); ok {
		return g.Exercises
	}
	return nil
}

// Structure returns the cardio structure, or nil for non-cardio sessions.
func (s Session) Structure() Structure {
	if c, ok := s.Detail.(CardioDetail); ok {
		return c.Structure
	}
	return nil
}

// SetExercises replaces the exercise list. It is a no-op unless the session is Gym.
func (s *Session) SetExercises(ex []Exercise) {
	if s.Sport != SportGym {
		return
	}
	s.Detail = GymDetail{Exercises: ex}
}

// SetStructure replaces the workout structure. It is a no-op unless the session is cardio.
func (s *Session) SetStructure(st Structure) {
	if !s.Sport.IsCardio() {
		return
	}
	s.Detail = CardioDetail{Structure: st}
}

// WithRPE sets the perceived exertion, clamped to 0..10.
func (s *Session) WithRPE(rpe int) *Session {
	rpe = max(0, min(10, rpe))
	s.RPE = &rpe
	return s
}

// Clear resets the session to its empty shape. The id is kept.
func (s *Session) Clear() {
	*s = Session{ID: s.ID}
}

// IsEmpty reports whether no sport is assigned.
func (s Session) IsEmpty() bool {
	return s.Sport == SportNone
}

// HasContent reports whether the session has exercises or structure steps.
func (s Session) HasContent() bool {
	switch d := s.Detail.(type) {
	case GymDetail:
		return len(d.Exercises) > 0
	case CardioDetail:
		return len(d.Structure) > 0
	}
	return false
}

// Clone returns a deep copy.
func (s Session) Clone() Session {
	out := s
	if s.RPE != nil {
		v := *s.RPE
		out.RPE = &v
	}
	if s.Detail != nil {
		out.Detail = s.Detail.clone()
	}
	return out
}

// Label is the compact calendar label: the sub-type with a " run" or
// " ride" suffix when the sub-type does not already say so, else the sport.
func (s Session) Label() string {
	if s.Sport == SportNone {
		return ""
	}
	sub := strings.TrimSpace(s.SubType)
	if sub == "" {
		return string(s.Sport)
	}
	lc := strings.ToLower(sub)
	switch {
	case s.Sport == SportRunning && !strings.Contains(lc, "run"):
		return sub + " run"
	case s.Sport == SportCycling && !strings.Contains(lc, "ride"):
		return sub + " ride"
	}
	return sub
}

type sessionJSON struct {
	ID               string          `json:"id"`
	Type             *Sport          `json:"type"`
	SubType          string          `json:"subType"`
	Periodization    string          `json:"periodization,omitempty"`
	Time             string          `json:"time"`
	Notes            string          `json:"notes"`
	RPE              json.RawMessage `json:"rpe,omitempty"`
	Exercises        []Exercise      `json:"exercises,omitempty"`
	WorkoutStructure Structure       `json:"workoutStructure,omitempty"`
}

// MarshalJSON writes the flat document shape used by the planner stores.
func (s Session) MarshalJSON() ([]byte, error) {
	out := sessionJSON{
		ID:               s.ID,
		SubType:          s.SubType,
		Periodization:    s.Periodization,
		Time:             s.Time,
		Notes:            s.Notes,
		Exercises:        s.Exercises(),
		WorkoutStructure: s.Structure(),
	}
	if s.Sport != SportNone {
		sp := s.Sport
		out.Type = &sp
	}
	if s.RPE != nil {
		out.RPE = json.RawMessage(fmt.Sprintf("%d", *s.RPE))
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat document shape. Payload fields that do not
// match the sport are dropped.
func (s *Session) UnmarshalJSON(data []byte) error {
	var in sessionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = Session{
		ID:            in.ID,
		SubType:       in.SubType,
		Periodization: in.Periodization,
		Time:          in.Time,
		Notes:         in.Notes,
	}
	if in.Type != nil {
		s.Sport = *in.Type
	}
	if v, ok := decodeLooseInt(in.RPE); ok {
		s.WithRPE(v)
	}
	switch {
	case s.Sport == SportGym:
		ex := in.Exercises
		if ex == nil {
			ex = []Exercise{}
		}
		s.Detail = GymDetail{Exercises: ex}
	case s.Sport.IsCardio():
		st := in.WorkoutStructure
		if st == nil {
			st = Structure{}
		}
		s.Detail = CardioDetail{Structure: st}
	}
	return nil
}
