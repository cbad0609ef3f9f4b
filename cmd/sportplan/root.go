// ABOUTME: Root Cobra command for the sportplan CLI.
// ABOUTME: Loads config, sets up logging, and opens the planner in PersistentPreRunE.
package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sportplan/internal/config"
	"github.com/harperreed/sportplan/internal/logging"
	"github.com/harperreed/sportplan/internal/planner"
	"github.com/harperreed/sportplan/internal/storage"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	cfg    *config.Config
	store  storage.Store
	plan   *planner.Planner
	logger *log.Logger

	flagDataDir  string
	flagBackend  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:     "sportplan",
	Short:   "Training week planner",
	Version: version,
	Long: `Sportplan is a CLI for planning training weeks.

Every day has a morning and an evening slot. Each slot holds one session:
gym (exercises with supersets), running or cycling (structured workouts
with repeat blocks), football, rest, or anything else.

QUICK START:

  $ sportplan plan                                     # Next 8 weeks
  $ sportplan session set today morning --sport Gym --sub-type Push
  $ sportplan exercise add today morning "Bench Press" --sets 5 --reps 5
  $ sportplan session set tomorrow evening --sport Running --sub-type "Tempo run"
  $ sportplan step add tomorrow evening --duration 8 --intensity 4:10
  $ sportplan day status today completed               # Mark as done

DATES AND SLOTS:

  Dates are YYYY-MM-DD, today, tomorrow or yesterday.
  Slots are morning (am, 1, training1) or evening (pm, 2, training2).

COPY AND PASTE:

  $ sportplan session copy 2024-06-03 morning
  $ sportplan session paste 2024-06-10 morning
  $ sportplan session swap today morning today evening

MCP INTEGRATION:

  Run 'sportplan mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "sportplan": { "command": "sportplan", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  The plan is stored in SQLite at ~/.local/share/sportplan/sportplan.db.
  Choose another backend (badger, charm, memory) with --backend or in
  ~/.config/sportplan/config.json (YAML and TOML also work).

  The charm backend syncs the plan across devices; see 'sportplan sync'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipsPlanner(cmd) {
			return nil
		}
		return openPlanner()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closePlanner()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite, badger, charm or memory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Execute runs the root command. The store is closed even when the
// command fails, since PersistentPostRunE only runs on success.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closePlanner(); err == nil {
		err = cerr
	}
	return err
}

func skipsPlanner(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "install-skill", "completion":
		return true
	}
	if cmd.Annotations[noPlanner] == "true" {
		return true
	}
	return cmd.HasParent() && cmd.Parent().Name() == "completion"
}

func openPlanner() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logger, err = logging.Setup(logging.Params{
		Level: cfg.GetLogLevel(),
		File:  cfg.LogFile,
		JSON:  cfg.LogJSON,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	store, err = cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.GetBackend(), err)
	}
	logger.Debug("store opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())

	plan, err = planner.Open(store, logger)
	if err != nil {
		_ = store.Close()
		store = nil
		return fmt.Errorf("failed to open planner: %w", err)
	}
	return nil
}

func closePlanner() error {
	plan = nil
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// parseDate turns a CLI date argument into a date key.
func parseDate(s string) (string, error) {
	today := planner.Today()
	switch s {
	case "today", "":
		return planner.DateKey(today), nil
	case "tomorrow":
		return planner.DateKey(today.AddDate(0, 0, 1)), nil
	case "yesterday":
		return planner.DateKey(today.AddDate(0, 0, -1)), nil
	}
	if _, err := planner.ParseDateKey(s); err != nil {
		return "", err
	}
	return s, nil
}

// parseDateTime is parseDate returning the civil time.
func parseDateTime(s string) (time.Time, error) {
	key, err := parseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return planner.ParseDateKey(key)
}

// parseRef resolves DATE SLOT arguments.
func parseRef(date, slot string) (planner.SlotRef, error) {
	key, err := parseDate(date)
	if err != nil {
		return planner.SlotRef{}, err
	}
	return planner.ParseSlotRef(key, slot)
}
