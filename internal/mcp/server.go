// ABOUTME: MCP server setup for the training planner.
// ABOUTME: Wraps the MCP server around a Planner and its logger.
package mcp

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sportplan/internal/planner"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with planner access.
type Server struct {
	mcpServer *mcp.Server
	planner   *planner.Planner
	logger    *log.Logger
	weeks     int
	today     func() time.Time
}

// NewServer creates a new MCP server over the given planner. weeks sets the
// length of the sportplan://window resource.
func NewServer(p *planner.Planner, logger *log.Logger, weeks int) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "sportplan",
			Version: "1.0.0",
		},
		nil,
	)

	if weeks < 1 {
		weeks = planner.DefaultWeeks
	}

	s := &Server{
		mcpServer: mcpServer,
		planner:   p,
		logger:    logger,
		weeks:     weeks,
		today:     planner.Today,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
