// ABOUTME: Week and month aggregation over days: per-sport counts and cardio totals.
// ABOUTME: Missed days are skipped and per-session estimates are summed unrounded.
package stats

import (
	"maps"
	"slices"

	"github.com/harperreed/sportplan/internal/models"
)

// OtherSubType labels sessions without a sub-type in breakdowns.
const OtherSubType = "Other"

// Summary aggregates the sessions of a set of days.
type Summary struct {
	Sessions map[models.Sport]int
	SubTypes map[models.Sport]map[string]int
	Running  Stats
	Cycling  Stats
}

// NewSummary returns an empty summary ready for AddDay.
func NewSummary() *Summary {
	return &Summary{
		Sessions: map[models.Sport]int{},
		SubTypes: map[models.Sport]map[string]int{},
	}
}

// Summarize aggregates the given days.
func Summarize(days []models.Day) *Summary {
	s := NewSummary()
	for _, d := range days {
		s.AddDay(d)
	}
	return s
}

// AddDay folds both sessions of a day into the summary. Missed days count for nothing.
func (s *Summary) AddDay(d models.Day) {
	if d.Status == models.StatusMissed {
		return
	}
	for _, slot := range models.Slots {
		s.addSession(d.Session(slot))
	}
}

func (s *Summary) addSession(sess models.Session) {
	if sess.IsEmpty() {
		return
	}
	s.Sessions[sess.Sport]++

	sub := sess.SubType
	if sub == "" {
		sub = OtherSubType
	}
	if s.SubTypes[sess.Sport] == nil {
		s.SubTypes[sess.Sport] = map[string]int{}
	}
	s.SubTypes[sess.Sport][sub]++

	switch sess.Sport {
	case models.SportRunning:
		s.Running = s.Running.Add(Compute(sess))
	case models.SportCycling:
		s.Cycling = s.Cycling.Add(Compute(sess))
	}
}

// Count returns the number of sessions of a sport.
func (s *Summary) Count(sport models.Sport) int {
	return s.Sessions[sport]
}

// Total returns the number of sessions across all sports.
func (s *Summary) Total() int {
	n := 0
	for _, c := range s.Sessions {
		n += c
	}
	return n
}

// Sports lists the sports present, in display order.
func (s *Summary) Sports() []models.Sport {
	var out []models.Sport
	for _, sp := range models.AllSports {
		if s.Sessions[sp] > 0 {
			out = append(out, sp)
		}
	}
	return out
}

// Breakdown returns the sub-type labels of a sport, sorted, with counts.
func (s *Summary) Breakdown(sport models.Sport) ([]string, map[string]int) {
	m := s.SubTypes[sport]
	return slices.Sorted(maps.Keys(m)), m
}
