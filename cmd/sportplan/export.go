// ABOUTME: CLI command for exporting the plan window.
// ABOUTME: Supports JSON (backup format), YAML and Markdown.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/backup"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportFrom   string
	exportWeeks  int
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export the plan",
	Long: `Export the plan in various formats.

FORMATS:

  json       Full backup document (all days, profile and week phases)
  yaml       The plan window with sessions, steps and weekly totals
  markdown   The plan window as one table per week

OPTIONS:

  --output, -o   Write to file instead of stdout
  --from         Any date in the first week (yaml/markdown, default today)
  --weeks, -n    Number of weeks (yaml/markdown, default from config)

EXAMPLES:

  sportplan export markdown                       # Print this window
  sportplan export yaml --weeks 4 -o block.yaml   # Four weeks to a file
  sportplan export markdown --from 2024-06-01     # Window around a past date
  sportplan export json -o plan.json              # Same as 'sportplan backup'`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		start, err := parseDateTime(exportFrom)
		if err != nil {
			return err
		}
		weeks := exportWeeks
		if weeks <= 0 {
			weeks = cfg.GetWindowWeeks()
		}

		var data []byte
		switch args[0] {
		case "json":
			data, err = backup.Create(plan, now).Marshal()
		case "yaml":
			data, err = backup.ExportYAML(plan.Plan(start, weeks), now)
		case "markdown", "md":
			data = []byte(backup.ExportMarkdown(plan.Plan(start, weeks), now))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Exported to %s", exportOutput))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "any date in the first week (default today)")
	exportCmd.Flags().IntVarP(&exportWeeks, "weeks", "n", 0, "number of weeks (default from config, 8)")

	rootCmd.AddCommand(exportCmd)
}
