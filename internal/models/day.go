// ABOUTME: Day model: a calendar date's planning record with two session slots.
// ABOUTME: Also defines slot, status, and CNS fatigue enums plus week metadata.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Slot names one of the two session positions of a Day.
type Slot string

const (
	SlotMorning Slot = "training1"
	SlotEvening Slot = "training2"
)

// Slots lists both slots in display order.
var Slots = []Slot{SlotMorning, SlotEvening}

// ParseSlot accepts "morning"/"am"/"1"/"training1" and "evening"/"pm"/"2"/"training2".
func ParseSlot(s string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning", "am", "1", "training1":
		return SlotMorning, nil
	case "evening", "pm", "2", "training2":
		return SlotEvening, nil
	}
	return "", fmt.Errorf("unknown slot: %q (use morning or evening)", s)
}

// String returns the human name of the slot.
func (s Slot) String() string {
	switch s {
	case SlotMorning:
		return "morning"
	case SlotEvening:
		return "evening"
	}
	return string(s)
}

// Status is the completion state of a Day.
type Status string

const (
	StatusNeutral   Status = "neutral"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

// ParseStatus matches a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{StatusNeutral, StatusCompleted, StatusMissed} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status: %q", s)
}

// Next cycles neutral -> completed -> missed -> neutral.
func (s Status) Next() Status {
	switch s {
	case StatusNeutral, "":
		return StatusCompleted
	case StatusCompleted:
		return StatusMissed
	default:
		return StatusNeutral
	}
}

// CNSFatigue is a coarse subjective load level. The zero value means unset.
type CNSFatigue string

const (
	CNSUnset  CNSFatigue = ""
	CNSLow    CNSFatigue = "Low"
	CNSMedium CNSFatigue = "Medium"
	CNSHigh   CNSFatigue = "High"
)

// ParseCNSFatigue matches low/medium/high; "none" or "" unset it.
func ParseCNSFatigue(s string) (CNSFatigue, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "unset":
		return CNSUnset, nil
	case "low":
		return CNSLow, nil
	case "medium":
		return CNSMedium, nil
	case "high":
		return CNSHigh, nil
	}
	return CNSUnset, fmt.Errorf("unknown CNS fatigue level: %q", s)
}

// MarshalJSON writes the unset level as null.
func (c CNSFatigue) MarshalJSON() ([]byte, error) {
	if c == CNSUnset {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON reads null as unset.
func (c *CNSFatigue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = CNSUnset
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = CNSFatigue(s)
	return nil
}

// Day is the planning record of one calendar date.
type Day struct {
	DayName    string     `json:"dayName"`
	Date       string     `json:"date"`
	CNSFatigue CNSFatigue `json:"cnsFatigue"`
	Status     Status     `json:"status"`
	DailyNotes string     `json:"dailyNotes"`
	Morning    Session    `json:"training1"`
	Evening    Session    `json:"training2"`
}

// Session returns the session in the given slot.
func (d Day) Session(slot Slot) Session {
	if slot == SlotEvening {
		return d.Evening
	}
	return d.Morning
}

// SetSession replaces the session in the given slot wholesale.
func (d *Day) SetSession(slot Slot, s Session) {
	if slot == SlotEvening {
		d.Evening = s
		return
	}
	d.Morning = s
}

// ToggleCNS sets the level, or unsets it when it is already selected.
func (d *Day) ToggleCNS(level CNSFatigue) {
	if d.CNSFatigue == level {
		d.CNSFatigue = CNSUnset
		return
	}
	d.CNSFatigue = level
}

// IsPlanned reports whether either slot has a sport.
func (d Day) IsPlanned() bool {
	return !d.Morning.IsEmpty() || !d.Evening.IsEmpty()
}

// Clone returns a deep copy.
func (d Day) Clone() Day {
	d.Morning = d.Morning.Clone()
	d.Evening = d.Evening.Clone()
	return d
}

// WeekMetadata holds week-level annotations keyed by the week's Monday.
type WeekMetadata struct {
	Periodization string `json:"periodization,omitempty"`
}
