// ABOUTME: Human-readable plan exports in YAML and Markdown.
// ABOUTME: Both render planner week views with per-session labels and estimates.
package backup

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/planner"
	"github.com/harperreed/sportplan/internal/stats"
	"gopkg.in/yaml.v3"
)

type yamlPlan struct {
	ExportedAt string     `yaml:"exported_at"`
	Tool       string     `yaml:"tool"`
	Weeks      []yamlWeek `yaml:"weeks"`
}

type yamlWeek struct {
	Week   int            `yaml:"week"`
	Start  string         `yaml:"start"`
	Phase  string         `yaml:"phase,omitempty"`
	Totals map[string]any `yaml:"totals,omitempty"`
	Days   []yamlDay      `yaml:"days"`
}

type yamlDay struct {
	Date     string        `yaml:"date"`
	Day      string        `yaml:"day"`
	Status   string        `yaml:"status"`
	CNS      string        `yaml:"cns,omitempty"`
	Notes    string        `yaml:"notes,omitempty"`
	Sessions []yamlSession `yaml:"sessions,omitempty"`
}

type yamlSession struct {
	Slot      string   `yaml:"slot"`
	Sport     string   `yaml:"sport"`
	SubType   string   `yaml:"sub_type,omitempty"`
	Time      string   `yaml:"time,omitempty"`
	RPE       *int     `yaml:"rpe,omitempty"`
	Notes     string   `yaml:"notes,omitempty"`
	Exercises []string `yaml:"exercises,omitempty"`
	Steps     []string `yaml:"steps,omitempty"`
	Distance  string   `yaml:"distance_km,omitempty"`
	Minutes   int      `yaml:"minutes,omitempty"`
}

// ExportYAML renders weeks as YAML.
func ExportYAML(weeks []planner.WeekView, now time.Time) ([]byte, error) {
	out := yamlPlan{
		ExportedAt: now.Format(time.RFC3339),
		Tool:       "sportplan",
		Weeks:      make([]yamlWeek, 0, len(weeks)),
	}
	for _, w := range weeks {
		yw := yamlWeek{Week: w.Number, Start: w.Start, Phase: w.Phase, Totals: weekTotals(w.Summary)}
		for _, e := range w.Days {
			yd := yamlDay{
				Date:   e.Key,
				Day:    e.Day.DayName,
				Status: string(e.Day.Status),
				CNS:    string(e.Day.CNSFatigue),
				Notes:  e.Day.DailyNotes,
			}
			for _, slot := range models.Slots {
				s := e.Day.Session(slot)
				if s.IsEmpty() {
					continue
				}
				yd.Sessions = append(yd.Sessions, yamlSessionOf(slot, s))
			}
			yw.Days = append(yw.Days, yd)
		}
		out.Weeks = append(out.Weeks, yw)
	}
	return yaml.Marshal(out)
}

func weekTotals(s *stats.Summary) map[string]any {
	if s == nil || s.Total() == 0 {
		return nil
	}
	t := map[string]any{}
	for _, sp := range s.Sports() {
		t[strings.ToLower(string(sp))] = s.Count(sp)
	}
	if !s.Running.IsZero() {
		t["running_km"] = s.Running.Distance()
	}
	if !s.Cycling.IsZero() {
		t["cycling_km"] = s.Cycling.Distance()
	}
	return t
}

func yamlSessionOf(slot models.Slot, s models.Session) yamlSession {
	ys := yamlSession{
		Slot:    slot.String(),
		Sport:   string(s.Sport),
		SubType: s.SubType,
		Time:    s.Time,
		RPE:     s.RPE,
		Notes:   s.Notes,
	}
	for _, ex := range s.Exercises() {
		ys.Exercises = append(ys.Exercises, ExerciseLine(ex))
	}
	ys.Steps = StructureLines(s.Structure())
	if st := stats.Compute(s); !st.IsZero() {
		ys.Distance = st.Distance()
		ys.Minutes = st.Minutes()
	}
	return ys
}

// ExerciseLine formats an exercise, e.g. "A Squat 5x5 @100 RPE 8".
func ExerciseLine(ex models.Exercise) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %dx%s", ex.GroupKey(), ex.Name, ex.Sets, ex.Reps)
	if ex.Weight != "" {
		fmt.Fprintf(&sb, " @%s", ex.Weight)
	}
	if ex.RPE != "" && ex.RPE != models.RPEUnset {
		fmt.Fprintf(&sb, " RPE %s", ex.RPE)
	}
	return sb.String()
}

// StepLine formats a step, e.g. "Run 0.4km @ 1:30".
func StepLine(s models.Step) string {
	dur := s.DurationValue
	if s.DurationKind == models.DurationDistance {
		dur += "km"
	}
	line := fmt.Sprintf("%s %s", s.Kind, dur)
	if s.IntensityKind != models.IntensityNone && s.IntensityValue != "" {
		line += " @ " + s.IntensityValue
		if s.IntensityKind == models.IntensityHeartRate {
			line += " bpm"
		}
	}
	return line
}

// StructureLines formats a structure, one line per step; block steps are
// indented under an "Nx" header.
func StructureLines(st models.Structure) []string {
	var out []string
	for _, c := range st {
		switch v := c.(type) {
		case models.Step:
			out = append(out, StepLine(v))
		case models.RepeatBlock:
			out = append(out, fmt.Sprintf("%dx", v.Repeats))
			for _, s := range v.Steps {
				out = append(out, "  "+StepLine(s))
			}
		}
	}
	return out
}

// ExportMarkdown renders weeks as Markdown tables.
func ExportMarkdown(weeks []planner.WeekView, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Training Plan - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, w := range weeks {
		title := fmt.Sprintf("## Week %d (%s)", w.Number, w.Start)
		if w.Phase != "" {
			title += " - " + w.Phase
		}
		sb.WriteString(title + "\n\n")
		sb.WriteString("| Day | Date | Morning | Evening | Status | CNS |\n")
		sb.WriteString("|-----|------|---------|---------|--------|-----|\n")
		for _, e := range w.Days {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				e.Day.DayName, e.Day.Date,
				cell(e.Day.Morning), cell(e.Day.Evening),
				e.Day.Status, e.Day.CNSFatigue))
		}
		if line := SummaryLine(w.Summary); line != "" {
			sb.WriteString("\n" + line + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func cell(s models.Session) string {
	if s.IsEmpty() {
		return ""
	}
	label := s.Label()
	if st := stats.Compute(s); !st.IsZero() {
		label += fmt.Sprintf(" (%s km)", st.Distance())
	}
	return strings.ReplaceAll(label, "|", "/")
}

// SummaryLine is a one-line digest of a summary, e.g.
// "Running 2x 12.0 km / 60m · Gym 1x". Empty when there are no sessions.
func SummaryLine(s *stats.Summary) string {
	if s == nil || s.Total() == 0 {
		return ""
	}
	var parts []string
	for _, sp := range s.Sports() {
		part := fmt.Sprintf("%s %dx", sp, s.Count(sp))
		switch sp {
		case models.SportRunning:
			part += fmt.Sprintf(" %s km / %s", s.Running.Distance(), s.Running.Duration())
		case models.SportCycling:
			part += fmt.Sprintf(" %s km / %s", s.Cycling.Distance(), s.Cycling.Duration())
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " · ")
}
