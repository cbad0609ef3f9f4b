// ABOUTME: CLI commands for JSON backup and restore of the whole plan.
// ABOUTME: Restore previews the file and asks before replacing anything.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/backup"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	backupOutput string
	restoreYes   bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a JSON backup of all days, profile and week phases",
	Long: `Write a JSON backup of the whole plan.

The backup holds every stored day, the fitness profile and the week
phases. By default it is written to backup_YYYY-MM-DD.json in the
current directory.

EXAMPLES:

  sportplan backup                       # ./backup_2024-06-03.json
  sportplan backup -o ~/plan.json
  sportplan backup -o - | gzip > plan.json.gz`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		doc := backup.Create(plan, now)
		data, err := doc.Marshal()
		if err != nil {
			return fmt.Errorf("failed to encode backup: %w", err)
		}

		if backupOutput == "-" {
			_, err := cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		}
		path := backupOutput
		if path == "" {
			path = backup.FileName(now)
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Backed up %d days to %s (%s)",
			len(doc.WorkoutDB), path, humanize.Bytes(uint64(len(data)))))
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore FILE",
	Short: "Replace the plan with a JSON backup",
	Long: `Replace the plan with the contents of a JSON backup.

All stored days are replaced. The fitness profile and week phases are
replaced only when the backup contains them. You are asked to confirm
unless --yes is given; without a terminal, --yes is required.

EXAMPLES:

  sportplan restore backup_2024-06-03.json
  sportplan restore plan.json --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}

		out := cmd.OutOrStdout()
		doc, err := backup.Restore(plan, data, func(doc *backup.Document) (bool, error) {
			previewBackup(out, doc)
			if restoreYes {
				return true, nil
			}
			return confirm(cmd, "Replace your current plan with this backup? [y/N] ")
		})
		if errors.Is(err, backup.ErrRestoreDeclined) {
			fmt.Fprintln(out, "Restore canceled.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to restore: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("✓ Restored %d days from %s", len(doc.WorkoutDB), args[0]))
		return nil
	},
}

func previewBackup(w io.Writer, doc *backup.Document) {
	when := "unknown time"
	if t, ok := doc.Time(); ok {
		when = fmt.Sprintf("%s (%s)", t.Local().Format("2006-01-02 15:04"), humanize.Time(t))
	}
	fmt.Fprintf(w, "Backup from %s, version %d\n", when, doc.Version)
	fmt.Fprintf(w, "  %s days, %s with sessions\n",
		humanize.Comma(int64(len(doc.WorkoutDB))), humanize.Comma(int64(doc.PlannedDays())))

	var extra []string
	if doc.FitnessData != nil {
		extra = append(extra, "fitness profile")
	}
	if len(doc.WeekMetadata) > 0 {
		extra = append(extra, fmt.Sprintf("%d week phases", len(doc.WeekMetadata)))
	}
	if len(extra) > 0 {
		fmt.Fprintf(w, "  includes %s\n", strings.Join(extra, " and "))
	}
}

// confirm asks a yes/no question on the command's input. Reading from a
// non-interactive stdin is refused.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, fmt.Errorf("stdin is not a terminal; pass --yes to confirm")
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func init() {
	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "output file, - for stdout (default backup_DATE.json)")
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(backupCmd, restoreCmd)
}
