// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server over the planner for AI assistants.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/sportplan/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and edit your training plan
through a standardized protocol. The server communicates via stdin/stdout;
logs go to stderr or the configured log file.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "sportplan": {
        "command": "sportplan",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_day          Day with both sessions, status, CNS and notes
  set_session      Replace a session (gym exercises or cardio structure)
  clear_session    Empty a session slot
  swap_sessions    Swap two session slots
  copy_session     Copy a session to the clipboard
  paste_session    Paste the clipboard into a slot
  set_day_status   Set status, CNS fatigue and notes of a day
  set_week_phase   Label the periodization phase of a week
  session_stats    Estimated distance and time of a session
  week_summary     Session counts and cardio totals of a week
  month_summary    Session counts and cardio totals of a month
  list_exercises   Known exercise names

AVAILABLE RESOURCES:

  sportplan://window    The current planning window
  sportplan://profile   Zones, gym PRs and exercise names`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(plan, logger, cfg.GetWindowWeeks())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
