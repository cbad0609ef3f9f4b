// ABOUTME: CLI command for copying the plan to another storage backend.
// ABOUTME: Refuses to overwrite a non-empty destination unless --force is given.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/config"
	"github.com/harperreed/sportplan/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo         string
	migrateToDir      string
	migrateForce      bool
	migrateSaveConfig bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy the plan to another storage backend",
	Long: `Copy all planner documents (days, profile, week phases, clipboard) from
the current backend to another one.

BACKENDS:

  sqlite   <data-dir>/sportplan.db (default)
  badger   <data-dir>/badger/
  charm    Charm KV, synced across devices with your SSH key
  memory   nothing is written (useful for a dry run)

EXAMPLES:

  sportplan migrate --to badger                 # Same data dir, new backend
  sportplan migrate --to sqlite --to-dir ~/sync # Another directory
  sportplan migrate --to badger --save-config   # Switch the config too
  sportplan --backend badger migrate --to sqlite --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := storage.CheckBackend(migrateTo)
		if err != nil {
			return err
		}
		dir := cfg.GetDataDir()
		if migrateToDir != "" {
			dir = config.ExpandPath(migrateToDir)
		}
		if to == cfg.GetBackend() && dir == cfg.GetDataDir() && to != storage.BackendCharm {
			return fmt.Errorf("source and destination are the same (%s in %s)", to, dir)
		}

		if !migrateForce {
			used, err := destinationInUse(to, dir)
			if err != nil {
				return err
			}
			if used {
				return fmt.Errorf("destination %s in %s already has data; use --force to overwrite", to, dir)
			}
		}

		dst, err := config.OpenBackend(to, dir)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		summary, err := storage.Migrate(store, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Copied %d documents (%s) from %s to %s",
			len(summary.Copied), humanize.Bytes(uint64(summary.Bytes)), cfg.GetBackend(), to))
		for _, key := range summary.Skipped {
			fmt.Fprintln(out, faint.Sprintf("  skipped %s (not in source)", key))
		}

		if migrateSaveConfig {
			if err := switchBackend(to, migrateToDir); err != nil {
				return err
			}
			fmt.Fprintln(out, color.GreenString("✓ Config now uses %s", to))
		}
		return nil
	},
}

// destinationInUse reports whether the destination backend already holds data.
func destinationInUse(backend, dir string) (bool, error) {
	switch backend {
	case storage.BackendSQLite:
		_, err := os.Stat(storage.SQLitePath(dir))
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return err == nil, err
	case storage.BackendBadger:
		return storage.IsDirNonEmpty(filepath.Join(dir, "badger"))
	}
	return false, nil
}

// switchBackend rewrites the config file, leaving env and flag overrides out of it.
func switchBackend(backend, dataDir string) error {
	file, err := config.LoadFile(config.GetConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		file = &config.Config{}
	} else if err != nil {
		return err
	}
	file.Backend = backend
	if dataDir != "" {
		file.DataDir = dataDir
	}
	if err := file.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, badger, charm or memory")
	migrateCmd.Flags().StringVar(&migrateToDir, "to-dir", "", "destination data directory (default: current)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite existing destination data")
	migrateCmd.Flags().BoolVar(&migrateSaveConfig, "save-config", false, "switch the config file to the destination")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
