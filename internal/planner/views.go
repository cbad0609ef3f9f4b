// ABOUTME: Read-only views: the Monday-aligned multi-week window and the month grid.
// ABOUTME: Each view carries its stats summary so renderers stay logic-free.
package planner

import (
	"time"

	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/stats"
)

// DefaultWeeks is the planner window length.
const DefaultWeeks = 8

// DayEntry pairs a date key with its Day.
type DayEntry struct {
	Key string
	Day models.Day
}

// WeekView is one row of the planner window.
type WeekView struct {
	Number  int
	Start   string
	Phase   string
	Days    []DayEntry
	Summary *stats.Summary
}

// Plan returns weeks consecutive weeks starting at the Monday on or before start.
func (p *Planner) Plan(start time.Time, weeks int) []WeekView {
	p.mu.Lock()
	defer p.mu.Unlock()

	if weeks < 1 {
		return nil
	}
	out := make([]WeekView, 0, weeks)
	var cur *WeekView
	for key, day := range p.days.Window(start, weeks*7) {
		if cur == nil || len(cur.Days) == 7 {
			t, _ := ParseDateKey(key)
			out = append(out, WeekView{
				Number:  WeekNumber(t),
				Start:   key,
				Phase:   p.weeks.weeks[key].Periodization,
				Summary: stats.NewSummary(),
			})
			cur = &out[len(out)-1]
		}
		cur.Days = append(cur.Days, DayEntry{Key: key, Day: day})
		cur.Summary.AddDay(day)
	}
	return out
}

// Week returns the week containing the date key.
func (p *Planner) Week(key string) (WeekView, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return WeekView{}, err
	}
	return p.Plan(t, 1)[0], nil
}

// MonthCell is one day in the month grid.
type MonthCell struct {
	Key     string
	Day     models.Day
	InMonth bool
}

// MonthGrid is the calendar of a month padded to whole Monday-start weeks.
type MonthGrid struct {
	Year    int
	Month   time.Month
	Weeks   [][]MonthCell
	Summary *stats.Summary
}

// Title returns e.g. "June 2024".
func (g MonthGrid) Title() string {
	return time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// MonthView builds the grid for a month. Weeks start at the Monday on or
// before the 1st and continue while the week start is within the month.
// Only in-month days count toward the summary.
func (p *Planner) MonthView(year int, month time.Month) MonthGrid {
	p.mu.Lock()
	defer p.mu.Unlock()

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	grid := MonthGrid{Year: year, Month: month, Summary: stats.NewSummary()}

	for ws := MondayOf(first); !ws.After(last); ws = ws.AddDate(0, 0, 7) {
		week := make([]MonthCell, 0, 7)
		for key, day := range p.days.Window(ws, 7) {
			t, _ := ParseDateKey(key)
			cell := MonthCell{Key: key, Day: day, InMonth: t.Month() == month}
			if cell.InMonth {
				grid.Summary.AddDay(day)
			}
			week = append(week, cell)
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}
