// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Calls handlers directly against a planner over an in-memory store.
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/planner"
	"github.com/harperreed/sportplan/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupServer creates a server over a fresh in-memory planner.
func setupServer(t *testing.T) (*Server, *planner.Planner) {
	t.Helper()

	p, err := planner.Open(storage.NewMemoryStore(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("Failed to open planner: %v", err)
	}
	server, err := NewServer(p, log.New(io.Discard), 2)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	server.today = func() time.Time { return time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC) }
	return server, p
}

func intervalSession() map[string]any {
	return map[string]any{
		"type":    "running",
		"subType": "Intervals",
		"workoutStructure": []any{
			map[string]any{
				"isRepeat": true,
				"repeats":  4,
				"steps": []any{
					map[string]any{
						"type": "Run", "durationType": "Distance", "durationValue": "0.4",
						"intensityType": "Pace", "intensityValue": "1:30",
					},
				},
			},
		},
	}
}

func TestNewServer(t *testing.T) {
	server, _ := setupServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.planner == nil {
		t.Error("Expected non-nil planner")
	}
	if server.weeks != 2 {
		t.Errorf("weeks = %d, want 2", server.weeks)
	}
}

func TestNewServerDefaultsWeeks(t *testing.T) {
	p, _ := planner.Open(storage.NewMemoryStore(), log.New(io.Discard))
	server, _ := NewServer(p, log.New(io.Discard), 0)
	if server.weeks != planner.DefaultWeeks {
		t.Errorf("weeks = %d, want %d", server.weeks, planner.DefaultWeeks)
	}
}

func TestHandleGetDay(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	_, out, err := server.handleGetDay(ctx, &mcp.CallToolRequest{}, dateInput{Date: "2024-06-03"})
	if err != nil {
		t.Fatalf("handleGetDay failed: %v", err)
	}
	v := out.(dayView)
	if v.DayName != "Monday" {
		t.Errorf("DayName = %q, want Monday", v.DayName)
	}
	if len(v.Sessions) != 2 {
		t.Fatalf("Sessions = %d, want 2", len(v.Sessions))
	}
	if v.Sessions[0].Slot != "morning" || v.Sessions[1].Slot != "evening" {
		t.Errorf("slots = %q/%q", v.Sessions[0].Slot, v.Sessions[1].Slot)
	}

	if _, _, err := server.handleGetDay(ctx, &mcp.CallToolRequest{}, dateInput{Date: "03/06/2024"}); err == nil {
		t.Error("Expected error for bad date key")
	}
}

func TestHandleSetSession(t *testing.T) {
	server, p := setupServer(t)
	ctx := context.Background()

	before, _ := p.Session(planner.SlotRef{Date: "2024-06-04", Slot: models.SlotMorning})

	_, out, err := server.handleSetSession(ctx, &mcp.CallToolRequest{}, setSessionInput{
		Date: "2024-06-04", Slot: "morning", Session: intervalSession(),
	})
	if err != nil {
		t.Fatalf("handleSetSession failed: %v", err)
	}

	v := out.(dayView)
	got := v.Sessions[0]
	if got.Session.Sport != models.SportRunning {
		t.Errorf("Sport = %q, want Running", got.Session.Sport)
	}
	if got.Session.ID != before.ID {
		t.Errorf("ID = %q, want slot id %q", got.Session.ID, before.ID)
	}
	if got.DistanceKm != 1.6 || got.Minutes != 2 {
		t.Errorf("stats = %.1f km / %d min, want 1.6 / 2", got.DistanceKm, got.Minutes)
	}
	if got.Label != "Intervals run" {
		t.Errorf("Label = %q", got.Label)
	}

	block := got.Session.Structure()[0].(models.RepeatBlock)
	if block.ID == "" || block.Steps[0].ID == "" {
		t.Error("Expected generated component ids")
	}
}

func TestHandleSetSessionGymAbsorbsNames(t *testing.T) {
	server, p := setupServer(t)
	ctx := context.Background()

	_, _, err := server.handleSetSession(ctx, &mcp.CallToolRequest{}, setSessionInput{
		Date: "2024-06-04", Slot: "evening",
		Session: map[string]any{
			"type": "Gym",
			"exercises": []any{
				map[string]any{"name": "Front Squat", "sets": 5, "reps": "3", "supersetId": "A"},
			},
		},
	})
	if err != nil {
		t.Fatalf("handleSetSession failed: %v", err)
	}

	names := p.ExerciseNames("front")
	if len(names) != 1 || names[0] != "Front Squat" {
		t.Errorf("ExerciseNames = %v", names)
	}
	sess, _ := p.Session(planner.SlotRef{Date: "2024-06-04", Slot: models.SlotEvening})
	ex := sess.Exercises()
	if len(ex) != 1 || ex[0].ID == "" || ex[0].RPE != models.RPEUnset {
		t.Errorf("exercise = %+v", ex)
	}
}

func TestHandleSetSessionErrors(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     setSessionInput
		errSubstr string
	}{
		{"bad slot", setSessionInput{Date: "2024-06-04", Slot: "noon"}, "slot"},
		{"bad date", setSessionInput{Date: "tomorrow", Slot: "am"}, "date"},
		{"bad sport", setSessionInput{Date: "2024-06-04", Slot: "am", Session: map[string]any{"type": "Chess"}}, "unknown sport"},
		{"bad group", setSessionInput{Date: "2024-06-04", Slot: "am", Session: map[string]any{
			"type": "Gym", "exercises": []any{map[string]any{"supersetId": "Z"}},
		}}, "superset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := server.handleSetSession(ctx, &mcp.CallToolRequest{}, tt.input)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestHandleClearSession(t *testing.T) {
	server, p := setupServer(t)
	ctx := context.Background()

	server.handleSetSession(ctx, &mcp.CallToolRequest{}, setSessionInput{Date: "2024-06-04", Slot: "am", Session: intervalSession()})
	ref := planner.SlotRef{Date: "2024-06-04", Slot: models.SlotMorning}
	before, _ := p.Session(ref)

	_, out, err := server.handleClearSession(ctx, &mcp.CallToolRequest{}, slotInput{Date: "2024-06-04", Slot: "am"})
	if err != nil {
		t.Fatalf("handleClearSession failed: %v", err)
	}
	if out.Message == "" {
		t.Error("Expected message")
	}
	after, _ := p.Session(ref)
	if !after.IsEmpty() || after.ID != before.ID {
		t.Errorf("after clear = %+v", after)
	}
}

func TestHandleSwapSessions(t *testing.T) {
	server, p := setupServer(t)
	ctx := context.Background()

	server.handleSetSession(ctx, &mcp.CallToolRequest{}, setSessionInput{Date: "2024-06-04", Slot: "am", Session: intervalSession()})

	_, _, err := server.handleSwapSessions(ctx, &mcp.CallToolRequest{}, swapInput{
		FromDate: "2024-06-04", FromSlot: "am", ToDate: "2024-06-06", ToSlot: "pm",
	})
	if err != nil {
		t.Fatalf("handleSwapSessions failed: %v", err)
	}

	moved, _ := p.Session(planner.SlotRef{Date: "2024-06-06", Slot: models.SlotEvening})
	left, _ := p.Session(planner.SlotRef{Date: "2024-06-04", Slot: models.SlotMorning})
	if moved.Sport != models.SportRunning {
		t.Errorf("moved sport = %q", moved.Sport)
	}
	if !left.IsEmpty() {
		t.Errorf("source should be empty, got %q", left.Sport)
	}

	_, _, err = server.handleSwapSessions(ctx, &mcp.CallToolRequest{}, swapInput{
		FromDate: "2024-06-04", FromSlot: "am", ToDate: "2024-06-06", ToSlot: "lunch",
	})
	if err == nil {
		t.Error("Expected error for bad slot")
	}
}

func TestHandleCopyPaste(t *testing.T) {
	server, p := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handlePasteSession(ctx, &mcp.CallToolRequest{}, slotInput{Date: "2024-06-05", Slot: "pm"}); err == nil {
		t.Error("Expected error pasting an empty clipboard")
	}

	server.handleSetSession(ctx, &mcp.CallToolRequest{}, setSessionInput{Date: "2024-06-04", Slot: "am", Session: intervalSession()})

	_, out, err := server.handleCopySession(ctx, &mcp.CallToolRequest{}, slotInput{Date: "2024-06-04", Slot: "am"})
	if err != nil {
		t.Fatalf("handleCopySession failed: %v", err)
	}
	if !strings.Contains(out.Message, "Intervals run") {
		t.Errorf("Message = %q", out.Message)
	}

	target := planner.SlotRef{Date: "2024-06-05", Slot: models.SlotEvening}
	targetBefore, _ := p.Session(target)
	if _, _, err := server.handlePasteSession(ctx, &mcp.CallToolRequest{}, slotInput{Date: "2024-06-05", Slot: "pm"}); err != nil {
		t.Fatalf("handlePasteSession failed: %v", err)
	}
	pasted, _ := p.Session(target)
	if pasted.Sport != models.SportRunning || pasted.ID != targetBefore.ID {
		t.Errorf("pasted = %+v", pasted)
	}
}

func TestHandleSetDayStatus(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	cns := "high"
	notes := "legs heavy"
	_, out, err := server.handleSetDayStatus(ctx, &mcp.CallToolRequest{}, setDayStatusInput{
		Date: "2024-06-04", Status: "missed", CNS: &cns, Notes: &notes,
	})
	if err != nil {
		t.Fatalf("handleSetDayStatus failed: %v", err)
	}
	v := out.(dayView)
	if v.Status != "missed" || v.CNS != "High" || v.Notes != "legs heavy" {
		t.Errorf("day = %+v", v)
	}

	_, out, _ = server.handleSetDayStatus(ctx, &mcp.CallToolRequest{}, setDayStatusInput{Date: "2024-06-04", Status: "next"})
	if got := out.(dayView).Status; got != "neutral" {
		t.Errorf("cycled status = %q, want neutral", got)
	}

	if _, _, err := server.handleSetDayStatus(ctx, &mcp.CallToolRequest{}, setDayStatusInput{Date: "2024-06-04", Status: "done"}); err == nil {
		t.Error("Expected error for unknown status")
	}
}

func TestHandleSetDayStatusInvalidChangesNothing(t *testing.T) {
	server, p := setupServer(t)
	ctx := context.Background()

	cns := "extreme"
	notes := "should not land"
	if _, _, err := server.handleSetDayStatus(ctx, &mcp.CallToolRequest{}, setDayStatusInput{
		Date: "2024-06-04", Status: "completed", CNS: &cns, Notes: &notes,
	}); err == nil {
		t.Fatal("Expected error for unknown CNS level")
	}

	notes = "nor this"
	if _, _, err := server.handleSetDayStatus(ctx, &mcp.CallToolRequest{}, setDayStatusInput{
		Date: "2024-06-04", Status: "done", Notes: &notes,
	}); err == nil {
		t.Fatal("Expected error for unknown status")
	}

	d, err := p.Day("2024-06-04")
	if err != nil {
		t.Fatal(err)
	}
	if d.Status != models.StatusNeutral || d.CNSFatigue != models.CNSUnset || d.DailyNotes != "" {
		t.Errorf("day changed after rejected update: %+v", d)
	}
}

func TestHandleSetWeekPhase(t *testing.T) {
	server, p := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleSetWeekPhase(ctx, &mcp.CallToolRequest{}, setWeekPhaseInput{Date: "2024-06-06", Phase: "Deload"}); err != nil {
		t.Fatalf("handleSetWeekPhase failed: %v", err)
	}
	phase, _ := p.Phase("2024-06-03")
	if phase != "Deload" {
		t.Errorf("Phase = %q, want Deload", phase)
	}

	_, out, _ := server.handleSetWeekPhase(ctx, &mcp.CallToolRequest{}, setWeekPhaseInput{Date: "2024-06-06"})
	if !strings.Contains(out.Message, "Cleared") {
		t.Errorf("Message = %q", out.Message)
	}
}

func TestHandleSessionStats(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	server.handleSetSession(ctx, &mcp.CallToolRequest{}, setSessionInput{Date: "2024-06-04", Slot: "am", Session: intervalSession()})

	_, out, err := server.handleSessionStats(ctx, &mcp.CallToolRequest{}, slotInput{Date: "2024-06-04", Slot: "am"})
	if err != nil {
		t.Fatalf("handleSessionStats failed: %v", err)
	}
	if out.DistanceKm != 1.6 || out.Minutes != 2 || out.Display != "1.6 km / ~2 min" {
		t.Errorf("stats = %+v", out)
	}
}

func TestHandleWeekAndMonthSummary(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	server.handleSetSession(ctx, &mcp.CallToolRequest{}, setSessionInput{Date: "2024-06-04", Slot: "am", Session: intervalSession()})
	server.handleSetSession(ctx, &mcp.CallToolRequest{}, setSessionInput{Date: "2024-06-05", Slot: "am", Session: intervalSession()})
	server.handleSetDayStatus(ctx, &mcp.CallToolRequest{}, setDayStatusInput{Date: "2024-06-05", Status: "missed"})
	server.handleSetWeekPhase(ctx, &mcp.CallToolRequest{}, setWeekPhaseInput{Date: "2024-06-04", Phase: "Week 2"})

	_, week, err := server.handleWeekSummary(ctx, &mcp.CallToolRequest{}, dateInput{Date: "2024-06-07"})
	if err != nil {
		t.Fatalf("handleWeekSummary failed: %v", err)
	}
	if week.Sessions["Running"] != 1 {
		t.Errorf("running sessions = %d, want 1 (missed day excluded)", week.Sessions["Running"])
	}
	if week.RunningKm != 1.6 || week.Phase != "Week 2" {
		t.Errorf("week = %+v", week)
	}

	_, month, err := server.handleMonthSummary(ctx, &mcp.CallToolRequest{}, monthInput{Month: "2024-06"})
	if err != nil {
		t.Fatalf("handleMonthSummary failed: %v", err)
	}
	if month.Title != "June 2024" || month.SubTypes["Running"]["Intervals"] != 1 {
		t.Errorf("month = %+v", month)
	}

	if _, _, err := server.handleMonthSummary(ctx, &mcp.CallToolRequest{}, monthInput{Month: "June"}); err == nil {
		t.Error("Expected error for bad month")
	}
}

func TestHandleListExercises(t *testing.T) {
	server, _ := setupServer(t)

	_, out, err := server.handleListExercises(context.Background(), &mcp.CallToolRequest{}, listExercisesInput{})
	if err != nil {
		t.Fatalf("handleListExercises failed: %v", err)
	}
	if out.Names == nil {
		t.Error("Expected non-nil names")
	}
}

func TestHandleWindowResource(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	server.handleSetSession(ctx, &mcp.CallToolRequest{}, setSessionInput{Date: "2024-06-04", Slot: "am", Session: intervalSession()})

	result, err := server.handleWindowResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleWindowResource failed: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].URI != windowURI {
		t.Fatalf("unexpected contents: %+v", result.Contents)
	}

	var body struct {
		Today string `json:"today"`
		Weeks []struct {
			Start string `json:"start"`
			Days  []struct {
				Date string `json:"date"`
			} `json:"days"`
			Summary struct {
				RunningKm float64 `json:"running_km"`
			} `json:"summary"`
		} `json:"weeks"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Today != "2024-06-05" {
		t.Errorf("today = %q", body.Today)
	}
	if len(body.Weeks) != 2 || body.Weeks[0].Start != "2024-06-03" || len(body.Weeks[0].Days) != 7 {
		t.Fatalf("weeks = %+v", body.Weeks)
	}
	if body.Weeks[0].Summary.RunningKm != 1.6 {
		t.Errorf("running_km = %v", body.Weeks[0].Summary.RunningKm)
	}
}

func TestHandleProfileResource(t *testing.T) {
	server, _ := setupServer(t)

	result, err := server.handleProfileResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleProfileResource failed: %v", err)
	}

	var fp models.FitnessProfile
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &fp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(fp.Gym) != 4 {
		t.Errorf("gym PRs = %d, want 4 defaults", len(fp.Gym))
	}
}
