// ABOUTME: Distance and time estimates derived from a cardio session's structure.
// ABOUTME: Best effort: malformed values contribute zero, nothing here returns an error.
package stats

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/harperreed/sportplan/internal/models"
)

// Stats is an unrounded distance/time estimate. Round only for display.
type Stats struct {
	DistanceKm  float64
	TimeMinutes float64
}

// Add returns the sum of two estimates.
func (s Stats) Add(o Stats) Stats {
	return Stats{DistanceKm: s.DistanceKm + o.DistanceKm, TimeMinutes: s.TimeMinutes + o.TimeMinutes}
}

// Scale multiplies both dimensions by n.
func (s Stats) Scale(n float64) Stats {
	return Stats{DistanceKm: s.DistanceKm * n, TimeMinutes: s.TimeMinutes * n}
}

// IsZero reports whether both dimensions are zero.
func (s Stats) IsZero() bool {
	return s.DistanceKm == 0 && s.TimeMinutes == 0
}

// Distance formats the distance with one decimal.
func (s Stats) Distance() string {
	return fmt.Sprintf("%.1f", s.DistanceKm)
}

// Minutes is the time rounded to the nearest whole minute.
func (s Stats) Minutes() int {
	return int(math.Round(s.TimeMinutes))
}

// Duration formats the rounded time as "1h05m", or "45m" under an hour.
func (s Stats) Duration() string {
	m := s.Minutes()
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}

// String is the compact display form, e.g. "1.6 km / ~6 min".
func (s Stats) String() string {
	return fmt.Sprintf("%s km / ~%d min", s.Distance(), s.Minutes())
}

// Compute estimates total distance and time for a session. Sessions that
// are not Running or Cycling, or that have no structure, yield zero.
func Compute(s models.Session) Stats {
	if !s.Sport.IsCardio() {
		return Stats{}
	}
	var total Stats
	for _, c := range s.Structure() {
		switch v := c.(type) {
		case models.Step:
			total = total.Add(StepStats(v))
		case models.RepeatBlock:
			for _, step := range v.Steps {
				total = total.Add(StepStats(step).Scale(float64(v.Repeats)))
			}
		}
	}
	return total
}

// StepStats is the contribution of a single step. The primary dimension
// comes from the duration; the other is derived from a positive pace.
func StepStats(step models.Step) Stats {
	var pace float64
	if step.IntensityKind == models.IntensityPace {
		pace = ParseMinutes(step.IntensityValue)
	}
	switch step.DurationKind {
	case models.DurationDistance:
		d := ParseDistance(step.DurationValue)
		out := Stats{DistanceKm: d}
		if pace > 0 {
			out.TimeMinutes = d * pace
		}
		return out
	default:
		t := ParseMinutes(step.DurationValue)
		out := Stats{TimeMinutes: t}
		if pace > 0 {
			out.DistanceKm = t / pace
		}
		return out
	}
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseDistance reads the leading decimal number of v in kilometers, so
// "5.2km" is 5.2. Negative or unparseable input is 0.
func ParseDistance(v string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(v))
	if m == "" {
		return 0
	}
	return nonNegative(strconv.ParseFloat(m, 64))
}

// ParseMinutes reads "m:s" as minutes plus seconds/60. Text without a
// colon, malformed parts and negative totals are 0. Parts past the second
// are ignored.
func ParseMinutes(v string) float64 {
	if !strings.Contains(v, ":") {
		return 0
	}
	parts := strings.Split(v, ":")
	m, err := parsePart(parts[0])
	if err != nil {
		return 0
	}
	s, err := parsePart(parts[1])
	if err != nil {
		return 0
	}
	return nonNegative(m+s/60, nil)
}

func parsePart(p string) (float64, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return 0, nil
	}
	return strconv.ParseFloat(p, 64)
}

func nonNegative(f float64, err error) float64 {
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
