// ABOUTME: Copy and paste of whole sessions between slots.
// ABOUTME: Pasted exercises get fresh ids; structure ids are kept.
package planner

import (
	"github.com/harperreed/sportplan/internal/models"
)

// Copy captures a session by value.
func Copy(s models.Session) models.Session {
	return s.Clone()
}

// Paste builds a session from the clipboard for the slot whose session id
// is id. Sport, sub-type, periodization, notes, RPE and time are copied;
// exercises are re-identified and the structure is deep-cloned.
func Paste(clip models.Session, id string) models.Session {
	out := clip.Clone()
	out.ID = id
	if ex := out.Exercises(); ex != nil {
		for i := range ex {
			ex[i].ID = models.NewID()
		}
		out.SetExercises(ex)
	}
	return out
}
