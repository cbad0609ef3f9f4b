// ABOUTME: Backup documents: create, parse, and confirmation-gated restore.
// ABOUTME: The format matches the planner's version 3 JSON backup file.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/planner"
)

// Version is written into every new backup.
const Version = 3

var (
	// ErrInvalidBackup means the file is not a readable JSON backup.
	ErrInvalidBackup = errors.New("invalid backup file")
	// ErrMissingWorkoutDB means the file has no workoutDB section.
	ErrMissingWorkoutDB = errors.New("backup has no workoutDB")
	// ErrRestoreDeclined means the user did not confirm the overwrite.
	ErrRestoreDeclined = errors.New("restore declined")
)

// Document is a full backup. FitnessData and WeekMetadata may be absent
// in files from older versions.
type Document struct {
	Version      int                            `json:"version"`
	Timestamp    string                         `json:"timestamp"`
	WorkoutDB    map[string]models.Day          `json:"workoutDB"`
	FitnessData  *models.FitnessProfile         `json:"fitnessData,omitempty"`
	WeekMetadata map[string]models.WeekMetadata `json:"weekMetadata,omitempty"`
}

// Create snapshots the planner into a new backup document.
func Create(p *planner.Planner, now time.Time) *Document {
	st := p.Snapshot()
	return &Document{
		Version:      Version,
		Timestamp:    now.UTC().Format(time.RFC3339Nano),
		WorkoutDB:    st.Days,
		FitnessData:  &st.Profile,
		WeekMetadata: st.Weeks,
	}
}

// FileName is the default backup file name for a date.
func FileName(now time.Time) string {
	return fmt.Sprintf("backup_%s.json", now.Format(planner.DateLayout))
}

// Marshal encodes the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Time parses the backup timestamp.
func (d *Document) Time() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, d.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PlannedDays counts days with at least one session.
func (d *Document) PlannedDays() int {
	n := 0
	for _, day := range d.WorkoutDB {
		if day.IsPlanned() {
			n++
		}
	}
	return n
}

// Parse decodes a backup file. A stored fitness profile is merged over
// the defaults the same way a normal load is.
func Parse(data []byte) (*Document, error) {
	var raw struct {
		Version      json.RawMessage                `json:"version"`
		Timestamp    json.RawMessage                `json:"timestamp"`
		WorkoutDB    map[string]models.Day          `json:"workoutDB"`
		FitnessData  json.RawMessage                `json:"fitnessData"`
		WeekMetadata map[string]models.WeekMetadata `json:"weekMetadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if raw.WorkoutDB == nil {
		return nil, ErrMissingWorkoutDB
	}

	doc := &Document{WorkoutDB: raw.WorkoutDB, WeekMetadata: raw.WeekMetadata}
	_ = json.Unmarshal(raw.Version, &doc.Version)
	_ = json.Unmarshal(raw.Timestamp, &doc.Timestamp)

	if len(raw.FitnessData) > 0 && string(raw.FitnessData) != "null" {
		fp := models.DefaultProfile()
		if err := json.Unmarshal(raw.FitnessData, &fp); err != nil {
			return nil, fmt.Errorf("%w: fitnessData: %v", ErrInvalidBackup, err)
		}
		doc.FitnessData = &fp
	}
	return doc, nil
}

// ConfirmFunc asks whether the current data may be overwritten by doc.
type ConfirmFunc func(doc *Document) (bool, error)

// Restore parses data and, once confirmed, replaces the planner's days
// and, when present in the file, its profile and week metadata. Nothing
// is applied on any error or when confirmation is declined.
func Restore(p *planner.Planner, data []byte, confirm ConfirmFunc) (*Document, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	ok, err := confirm(doc)
	if err != nil {
		return doc, fmt.Errorf("confirm restore: %w", err)
	}
	if !ok {
		return doc, ErrRestoreDeclined
	}
	if err := p.Restore(doc.WorkoutDB, doc.FitnessData, doc.WeekMetadata); err != nil {
		return doc, err
	}
	return doc, nil
}
