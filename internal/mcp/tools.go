// ABOUTME: MCP tool implementations for the training planner.
// ABOUTME: Reads days, writes sessions, moves them between slots, and reports stats.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/planner"
	"github.com/harperreed/sportplan/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_day",
		Description: "Get one day of the plan with both sessions and their estimates",
	}, s.handleGetDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_session",
		Description: "Replace the morning or evening session of a day",
	}, s.handleSetSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_session",
		Description: "Reset a session slot to empty",
	}, s.handleClearSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "swap_sessions",
		Description: "Exchange two session slots, on the same day or different days",
	}, s.handleSwapSessions)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "copy_session",
		Description: "Copy a session to the clipboard",
	}, s.handleCopySession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "paste_session",
		Description: "Paste the clipboard session into a slot, keeping the slot's id",
	}, s.handlePasteSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_day_status",
		Description: "Set a day's completion status, CNS fatigue or notes",
	}, s.handleSetDayStatus)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_week_phase",
		Description: "Set the periodization phase of the week containing a date",
	}, s.handleSetWeekPhase)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "session_stats",
		Description: "Estimate distance and time of a running or cycling session",
	}, s.handleSessionStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "week_summary",
		Description: "Session counts and running/cycling totals for the week containing a date",
	}, s.handleWeekSummary)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "month_summary",
		Description: "Per-sport counts, sub-type breakdown and totals for a month",
	}, s.handleMonthSummary)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List known gym exercise names, optionally filtered",
	}, s.handleListExercises)
}

// Tool input/output types

type dateInput struct {
	Date string `json:"date" jsonschema:"Date key (YYYY-MM-DD)"`
}

type slotInput struct {
	Date string `json:"date" jsonschema:"Date key (YYYY-MM-DD)"`
	Slot string `json:"slot" jsonschema:"Session slot: morning or evening"`
}

type setSessionInput struct {
	Date    string         `json:"date" jsonschema:"Date key (YYYY-MM-DD)"`
	Slot    string         `json:"slot" jsonschema:"Session slot: morning or evening"`
	Session map[string]any `json:"session" jsonschema:"Session document: type (Gym, Running, Cycling, Football, Rest, Other), subType, time, rpe, notes, periodization, and exercises for Gym or workoutStructure for Running/Cycling (repeat blocks carry isRepeat, repeats and steps)"`
}

type swapInput struct {
	FromDate string `json:"from_date" jsonschema:"Date key of the first slot"`
	FromSlot string `json:"from_slot" jsonschema:"First slot: morning or evening"`
	ToDate   string `json:"to_date" jsonschema:"Date key of the second slot"`
	ToSlot   string `json:"to_slot" jsonschema:"Second slot: morning or evening"`
}

type setDayStatusInput struct {
	Date   string  `json:"date" jsonschema:"Date key (YYYY-MM-DD)"`
	Status string  `json:"status,omitempty" jsonschema:"neutral, completed, missed, or next to cycle"`
	CNS    *string `json:"cns,omitempty" jsonschema:"CNS fatigue: low, medium, high or none"`
	Notes  *string `json:"notes,omitempty" jsonschema:"Daily notes; empty string clears them"`
}

type setWeekPhaseInput struct {
	Date  string `json:"date" jsonschema:"Any date in the week"`
	Phase string `json:"phase" jsonschema:"Phase label such as Week 1, Deload or Peak Week; empty clears it"`
}

type monthInput struct {
	Month string `json:"month,omitempty" jsonschema:"Month as YYYY-MM, defaults to the current month"`
}

type listExercisesInput struct {
	Filter string `json:"filter,omitempty" jsonschema:"Case-insensitive substring filter"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type statsOutput struct {
	DistanceKm float64 `json:"distance_km"`
	Minutes    int     `json:"minutes"`
	Display    string  `json:"display"`
}

type summaryOutput struct {
	Title          string                    `json:"title"`
	Phase          string                    `json:"phase,omitempty"`
	Sessions       map[string]int            `json:"sessions"`
	SubTypes       map[string]map[string]int `json:"sub_types,omitempty"`
	RunningKm      float64                   `json:"running_km"`
	RunningMinutes int                       `json:"running_minutes"`
	CyclingKm      float64                   `json:"cycling_km"`
	CyclingMinutes int                       `json:"cycling_minutes"`
}

type exercisesOutput struct {
	Names []string `json:"names"`
}

type sessionView struct {
	Slot       string         `json:"slot"`
	Label      string         `json:"label,omitempty"`
	Session    models.Session `json:"session"`
	DistanceKm float64        `json:"distance_km,omitempty"`
	Minutes    int            `json:"minutes,omitempty"`
}

type dayView struct {
	Date     string        `json:"date"`
	DayName  string        `json:"day_name"`
	Status   string        `json:"status"`
	CNS      string        `json:"cns,omitempty"`
	Notes    string        `json:"notes,omitempty"`
	Phase    string        `json:"week_phase,omitempty"`
	Sessions []sessionView `json:"sessions"`
}

func roundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

func newDayView(key string, d models.Day, phase string) dayView {
	v := dayView{
		Date:    key,
		DayName: d.DayName,
		Status:  string(d.Status),
		CNS:     string(d.CNSFatigue),
		Notes:   d.DailyNotes,
		Phase:   phase,
	}
	for _, slot := range models.Slots {
		sess := d.Session(slot)
		st := stats.Compute(sess)
		v.Sessions = append(v.Sessions, sessionView{
			Slot:       slot.String(),
			Label:      sess.Label(),
			Session:    sess,
			DistanceKm: roundKm(st.DistanceKm),
			Minutes:    st.Minutes(),
		})
	}
	return v
}

func newSummaryOutput(title string, sum *stats.Summary) summaryOutput {
	out := summaryOutput{
		Title:          title,
		Sessions:       map[string]int{},
		RunningKm:      roundKm(sum.Running.DistanceKm),
		RunningMinutes: sum.Running.Minutes(),
		CyclingKm:      roundKm(sum.Cycling.DistanceKm),
		CyclingMinutes: sum.Cycling.Minutes(),
	}
	for _, sp := range sum.Sports() {
		out.Sessions[string(sp)] = sum.Count(sp)
		if _, counts := sum.Breakdown(sp); len(counts) > 0 {
			if out.SubTypes == nil {
				out.SubTypes = map[string]map[string]int{}
			}
			out.SubTypes[string(sp)] = counts
		}
	}
	return out
}

func (s *Server) dayView(key string) (dayView, error) {
	d, err := s.planner.Day(key)
	if err != nil {
		return dayView{}, err
	}
	phase, err := s.planner.Phase(key)
	if err != nil {
		return dayView{}, err
	}
	return newDayView(key, d, phase), nil
}

// decodeSession turns a tool payload into a Session. The sport is matched
// case-insensitively and missing exercise or step ids are generated.
func decodeSession(doc map[string]any) (models.Session, error) {
	if doc == nil {
		doc = map[string]any{}
	}
	if raw, ok := doc["type"]; ok && raw != nil {
		name, ok := raw.(string)
		if !ok {
			return models.Session{}, fmt.Errorf("session type must be a string")
		}
		sp, err := models.ParseSport(name)
		if err != nil {
			return models.Session{}, err
		}
		if sp == models.SportNone {
			delete(doc, "type")
		} else {
			doc["type"] = string(sp)
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return models.Session{}, fmt.Errorf("encode session: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return models.Session{}, fmt.Errorf("invalid session: %w", err)
	}

	if ex := sess.Exercises(); ex != nil {
		for i := range ex {
			if ex[i].ID == "" {
				ex[i].ID = models.NewID()
			}
			if ex[i].Group != "" && !models.IsValidGroup(ex[i].Group) {
				return models.Session{}, fmt.Errorf("invalid superset group %q", ex[i].Group)
			}
			if err := ex[i].SetRPE(ex[i].RPE); err != nil {
				return models.Session{}, err
			}
		}
		sess.SetExercises(ex)
	}
	if st := sess.Structure(); st != nil {
		for i, c := range st {
			switch v := c.(type) {
			case models.Step:
				if v.ID == "" {
					v.ID = models.NewID()
				}
				st[i] = v
			case models.RepeatBlock:
				if v.ID == "" {
					v.ID = models.NewID()
				}
				for j := range v.Steps {
					if v.Steps[j].ID == "" {
						v.Steps[j].ID = models.NewID()
					}
				}
				v.Repeats = max(1, v.Repeats)
				st[i] = v
			}
		}
		sess.SetStructure(st)
	}
	return sess, nil
}

// Tool handlers

func (s *Server) handleGetDay(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	v, err := s.dayView(input.Date)
	if err != nil {
		return nil, nil, err
	}
	return nil, v, nil
}

func (s *Server) handleSetSession(ctx context.Context, req *mcp.CallToolRequest, input setSessionInput) (*mcp.CallToolResult, any, error) {
	ref, err := planner.ParseSlotRef(input.Date, input.Slot)
	if err != nil {
		return nil, nil, err
	}
	sess, err := decodeSession(input.Session)
	if err != nil {
		return nil, nil, err
	}
	current, err := s.planner.Session(ref)
	if err != nil {
		return nil, nil, err
	}
	sess.ID = current.ID

	if err := s.planner.SaveSession(ref, sess); err != nil {
		return nil, nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s.handleGetDay(ctx, req, dateInput{Date: input.Date})
}

func (s *Server) handleClearSession(ctx context.Context, req *mcp.CallToolRequest, input slotInput) (*mcp.CallToolResult, simpleOutput, error) {
	ref, err := planner.ParseSlotRef(input.Date, input.Slot)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.planner.ClearSession(ref); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Cleared %s", ref)}, nil
}

func (s *Server) handleSwapSessions(ctx context.Context, req *mcp.CallToolRequest, input swapInput) (*mcp.CallToolResult, simpleOutput, error) {
	a, err := planner.ParseSlotRef(input.FromDate, input.FromSlot)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	b, err := planner.ParseSlotRef(input.ToDate, input.ToSlot)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.planner.Swap(a, b); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Swapped %s and %s", a, b)}, nil
}

func (s *Server) handleCopySession(ctx context.Context, req *mcp.CallToolRequest, input slotInput) (*mcp.CallToolResult, simpleOutput, error) {
	ref, err := planner.ParseSlotRef(input.Date, input.Slot)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	clip, err := s.planner.Copy(ref)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	label := clip.Label()
	if label == "" {
		label = "empty session"
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Copied %s from %s", label, ref)}, nil
}

func (s *Server) handlePasteSession(ctx context.Context, req *mcp.CallToolRequest, input slotInput) (*mcp.CallToolResult, simpleOutput, error) {
	ref, err := planner.ParseSlotRef(input.Date, input.Slot)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	pasted, err := s.planner.Paste(ref)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Pasted %s into %s", pasted.Label(), ref)}, nil
}

func (s *Server) handleSetDayStatus(ctx context.Context, req *mcp.CallToolRequest, input setDayStatusInput) (*mcp.CallToolResult, any, error) {
	var status models.Status
	if input.Status != "" && input.Status != "next" {
		st, err := models.ParseStatus(input.Status)
		if err != nil {
			return nil, nil, err
		}
		status = st
	}
	var level models.CNSFatigue
	if input.CNS != nil {
		l, err := models.ParseCNSFatigue(*input.CNS)
		if err != nil {
			return nil, nil, err
		}
		level = l
	}

	// All fields land in one commit so a bad value changes nothing.
	_, err := s.planner.UpdateDay(input.Date, func(d *models.Day) {
		switch {
		case input.Status == "next":
			d.Status = d.Status.Next()
		case status != "":
			d.Status = status
		}
		if input.CNS != nil {
			d.CNSFatigue = level
		}
		if input.Notes != nil {
			d.DailyNotes = *input.Notes
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return s.handleGetDay(ctx, req, dateInput{Date: input.Date})
}

func (s *Server) handleSetWeekPhase(ctx context.Context, req *mcp.CallToolRequest, input setWeekPhaseInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.planner.SetPhase(input.Date, input.Phase); err != nil {
		return nil, simpleOutput{}, err
	}
	if input.Phase == "" {
		return nil, simpleOutput{Message: fmt.Sprintf("Cleared phase for week of %s", input.Date)}, nil
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Week of %s set to %s", input.Date, input.Phase)}, nil
}

func (s *Server) handleSessionStats(ctx context.Context, req *mcp.CallToolRequest, input slotInput) (*mcp.CallToolResult, statsOutput, error) {
	ref, err := planner.ParseSlotRef(input.Date, input.Slot)
	if err != nil {
		return nil, statsOutput{}, err
	}
	sess, err := s.planner.Session(ref)
	if err != nil {
		return nil, statsOutput{}, err
	}
	st := stats.Compute(sess)
	return nil, statsOutput{
		DistanceKm: roundKm(st.DistanceKm),
		Minutes:    st.Minutes(),
		Display:    st.String(),
	}, nil
}

func (s *Server) handleWeekSummary(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, summaryOutput, error) {
	w, err := s.planner.Week(input.Date)
	if err != nil {
		return nil, summaryOutput{}, err
	}
	out := newSummaryOutput(fmt.Sprintf("Week %d (%s)", w.Number, w.Start), w.Summary)
	out.Phase = w.Phase
	return nil, out, nil
}

func (s *Server) handleMonthSummary(ctx context.Context, req *mcp.CallToolRequest, input monthInput) (*mcp.CallToolResult, summaryOutput, error) {
	year, month, err := planner.ParseMonth(input.Month)
	if err != nil {
		return nil, summaryOutput{}, err
	}
	grid := s.planner.MonthView(year, month)
	return nil, newSummaryOutput(grid.Title(), grid.Summary), nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, exercisesOutput, error) {
	names := s.planner.ExerciseNames(input.Filter)
	if names == nil {
		names = []string{}
	}
	return nil, exercisesOutput{Names: names}, nil
}
