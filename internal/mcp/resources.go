// ABOUTME: MCP resource implementations for the training planner.
// ABOUTME: Provides sportplan://window and sportplan://profile resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/sportplan/internal/planner"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	windowURI  = "sportplan://window"
	profileURI = "sportplan://profile"
)

func (s *Server) registerResources() {
	// sportplan://window - the current planning window, week by week
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         windowURI,
		Name:        "Planning Window",
		Description: "The weeks starting at the current Monday, with days, phases and totals",
		MIMEType:    "application/json",
	}, s.handleWindowResource)

	// sportplan://profile - zones, PRs and the exercise database
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         profileURI,
		Name:        "Fitness Profile",
		Description: "Running and cycling zones, gym PRs and known exercise names",
		MIMEType:    "application/json",
	}, s.handleProfileResource)
}

type weekView struct {
	Week    int           `json:"week"`
	Start   string        `json:"start"`
	Phase   string        `json:"phase,omitempty"`
	Summary summaryOutput `json:"summary"`
	Days    []dayView     `json:"days"`
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleWindowResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.today()
	weeks := s.planner.Plan(today, s.weeks)

	out := make([]weekView, 0, len(weeks))
	for _, w := range weeks {
		wv := weekView{
			Week:    w.Number,
			Start:   w.Start,
			Phase:   w.Phase,
			Summary: newSummaryOutput(fmt.Sprintf("Week %d", w.Number), w.Summary),
		}
		for _, e := range w.Days {
			wv.Days = append(wv.Days, newDayView(e.Key, e.Day, w.Phase))
		}
		out = append(out, wv)
	}

	return jsonResource(windowURI, map[string]any{
		"today": planner.DateKey(today),
		"weeks": out,
	})
}

func (s *Server) handleProfileResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(profileURI, s.planner.Profile())
}
