// ABOUTME: Terminal rendering for days, sessions and summaries.
// ABOUTME: Also resolves the 1-based positions the CLI uses for exercises and steps.
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/backup"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/stats"
)

var faint = color.New(color.Faint)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func statusMark(st models.Status) string {
	switch st {
	case models.StatusCompleted:
		return color.GreenString("✓")
	case models.StatusMissed:
		return color.RedString("✗")
	}
	return faint.Sprint("·")
}

// cell is the one-line form of a session used in week tables.
func cell(s models.Session) string {
	if s.IsEmpty() {
		return faint.Sprint("-")
	}
	label := s.Label()
	if st := stats.Compute(s); !st.IsZero() {
		label += fmt.Sprintf(" (%s km)", st.Distance())
	}
	return label
}

func renderDayLine(w io.Writer, key string, d models.Day) {
	cns := ""
	if d.CNSFatigue != models.CNSUnset {
		cns = faint.Sprintf("  CNS %s", d.CNSFatigue)
	}
	fmt.Fprintf(w, "  %s %s %s  %s | %s%s\n",
		padRight(truncate(d.DayName, 3), 3),
		faint.Sprint(key),
		statusMark(d.Status),
		cell(d.Morning),
		cell(d.Evening),
		cns)
}

func renderSummary(w io.Writer, s *stats.Summary) {
	if line := backup.SummaryLine(s); line != "" {
		fmt.Fprintf(w, "  %s\n", faint.Sprint(line))
	}
}

func renderDay(w io.Writer, key string, d models.Day) {
	fmt.Fprintf(w, "%s %s  %s %s\n", color.New(color.Bold).Sprint(d.DayName), key, statusMark(d.Status), d.Status)
	if d.CNSFatigue != models.CNSUnset {
		fmt.Fprintf(w, "CNS fatigue: %s\n", d.CNSFatigue)
	}
	if d.DailyNotes != "" {
		fmt.Fprintf(w, "Notes: %s\n", d.DailyNotes)
	}
	for _, slot := range models.Slots {
		fmt.Fprintf(w, "\n%s\n", color.CyanString(strings.ToUpper(slot.String())))
		renderSession(w, d.Session(slot))
	}
}

func renderSession(w io.Writer, s models.Session) {
	if s.IsEmpty() {
		fmt.Fprintln(w, faint.Sprint("  (empty)"))
		return
	}

	head := s.Label()
	if s.Time != "" {
		head += "  " + s.Time
	}
	if s.RPE != nil {
		head += fmt.Sprintf("  RPE %d", *s.RPE)
	}
	if s.Periodization != "" {
		head += faint.Sprintf("  [%s]", s.Periodization)
	}
	fmt.Fprintf(w, "  %s\n", head)
	if s.Notes != "" {
		fmt.Fprintf(w, "  %s\n", faint.Sprint(s.Notes))
	}

	for i, ex := range s.Exercises() {
		fmt.Fprintf(w, "  %2d  %s\n", i+1, backup.ExerciseLine(ex))
	}
	for i, c := range s.Structure() {
		switch v := c.(type) {
		case models.Step:
			fmt.Fprintf(w, "  %2d  %s\n", i+1, backup.StepLine(v))
		case models.RepeatBlock:
			fmt.Fprintf(w, "  %2d  %dx\n", i+1, v.Repeats)
			for j, st := range v.Steps {
				fmt.Fprintf(w, "      %d.%d  %s\n", i+1, j+1, backup.StepLine(st))
			}
		}
	}

	if st := stats.Compute(s); !st.IsZero() {
		fmt.Fprintf(w, "  %s\n", faint.Sprint("≈ "+st.String()))
	}
}

// exerciseID resolves a 1-based position or an exercise id.
func exerciseID(s models.Session, pos string) (string, int, error) {
	ex := s.Exercises()
	if n, err := strconv.Atoi(pos); err == nil {
		if n < 1 || n > len(ex) {
			return "", 0, fmt.Errorf("no exercise at position %d", n)
		}
		return ex[n-1].ID, n - 1, nil
	}
	for i, x := range ex {
		if x.ID == pos {
			return x.ID, i, nil
		}
	}
	return "", 0, fmt.Errorf("exercise not found: %s", pos)
}

// componentID resolves a position such as "3" or "2.1" (step 1 of the
// block at 2), or a raw id, to a component id and its parent block id.
func componentID(s models.Session, pos string) (id, parentID string, err error) {
	st := s.Structure()
	top, sub, nested := strings.Cut(pos, ".")
	n, err := strconv.Atoi(top)
	if err != nil {
		return idLookup(st, pos)
	}
	if n < 1 || n > len(st) {
		return "", "", fmt.Errorf("no step at position %d", n)
	}
	if !nested {
		return st[n-1].ComponentID(), "", nil
	}

	b, ok := st[n-1].(models.RepeatBlock)
	if !ok {
		return "", "", fmt.Errorf("position %d is not a repeat block", n)
	}
	m, err := strconv.Atoi(sub)
	if err != nil || m < 1 || m > len(b.Steps) {
		return "", "", fmt.Errorf("no step at position %s", pos)
	}
	return b.Steps[m-1].ID, b.ID, nil
}

func idLookup(st models.Structure, id string) (string, string, error) {
	for _, c := range st {
		if c.ComponentID() == id {
			return id, "", nil
		}
		if b, ok := c.(models.RepeatBlock); ok {
			for _, s := range b.Steps {
				if s.ID == id {
					return id, b.ID, nil
				}
			}
		}
	}
	return "", "", fmt.Errorf("step not found: %s", id)
}

// blockID resolves the position of a top-level repeat block.
func blockID(s models.Session, pos string) (string, error) {
	id, parent, err := componentID(s, pos)
	if err != nil {
		return "", err
	}
	if parent != "" {
		return "", fmt.Errorf("%s is a step inside a block, not a block", pos)
	}
	if _, ok := s.Structure()[s.Structure().Index(id)].(models.RepeatBlock); !ok {
		return "", fmt.Errorf("%s is not a repeat block", pos)
	}
	return id, nil
}
