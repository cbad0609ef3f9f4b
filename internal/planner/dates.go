// ABOUTME: Calendar helpers for date keys, Monday alignment, and ISO week numbers.
// ABOUTME: All dates are civil dates at UTC midnight so keys never drift with the zone.
package planner

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO date key format.
const DateLayout = "2006-01-02"

// ErrInvalidDateKey is returned for keys that are not YYYY-MM-DD dates.
var ErrInvalidDateKey = errors.New("invalid date key")

// ParseDateKey parses a YYYY-MM-DD key into a UTC midnight time.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return t, nil
}

// DateKey formats t's civil date as a key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Civil drops the clock and zone from t, keeping its calendar date.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the local calendar date.
func Today() time.Time {
	return Civil(time.Now())
}

// MondayOf returns the Monday on or before t.
func MondayOf(t time.Time) time.Time {
	t = Civil(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// WeekNumber returns the ISO-8601 week number of t.
func WeekNumber(t time.Time) int {
	_, w := t.ISOWeek()
	return w
}

// DayName returns the English weekday name.
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// ShortDate returns the short English display date, e.g. "3 Jun".
func ShortDate(t time.Time) string {
	return t.Format("2 Jan")
}

// ParseMonth parses "YYYY-MM". Empty input means the current month.
func ParseMonth(s string) (int, time.Month, error) {
	if s == "" {
		t := Today()
		return t.Year(), t.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}
