// ABOUTME: CLI commands for day-level fields: status, CNS fatigue, and notes.
// ABOUTME: Each change is committed to the store before the command returns.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/spf13/cobra"
)

var cnsToggle bool

var dayCmd = &cobra.Command{
	Use:     "day",
	Aliases: []string{"d"},
	Short:   "Show or update a day",
	Long: `Show a day with both sessions, or update its status, CNS fatigue or notes.

EXAMPLES:

  sportplan day show today
  sportplan day status today completed     # neutral, completed or missed
  sportplan day status today               # Cycle neutral → completed → missed
  sportplan day cns today high             # low, medium, high or none
  sportplan day cns today high --toggle    # Clear if already high
  sportplan day note today "Slept badly"`,
}

var dayShowCmd = &cobra.Command{
	Use:   "show [DATE]",
	Short: "Show a day with both sessions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseDate(argOr(args, 0))
		if err != nil {
			return err
		}
		day, err := plan.Day(key)
		if err != nil {
			return err
		}
		renderDay(cmd.OutOrStdout(), key, day)
		return nil
	},
}

var dayStatusCmd = &cobra.Command{
	Use:   "status DATE [neutral|completed|missed]",
	Short: "Set or cycle a day's status",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseDate(args[0])
		if err != nil {
			return err
		}

		var st models.Status
		if len(args) == 1 || strings.EqualFold(args[1], "next") {
			st, err = plan.CycleStatus(key)
		} else {
			st, err = models.ParseStatus(args[1])
			if err == nil {
				err = plan.SetStatus(key, st)
			}
		}
		if err != nil {
			return fmt.Errorf("failed to set status: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s is %s\n", statusMark(st), key, st)
		return nil
	},
}

var dayCNSCmd = &cobra.Command{
	Use:   "cns DATE LEVEL",
	Short: "Set a day's CNS fatigue (low, medium, high, none)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseDate(args[0])
		if err != nil {
			return err
		}
		level, err := models.ParseCNSFatigue(args[1])
		if err != nil {
			return err
		}

		if cnsToggle {
			level, err = plan.ToggleCNS(key, level)
		} else {
			err = plan.SetCNS(key, level)
		}
		if err != nil {
			return fmt.Errorf("failed to set CNS fatigue: %w", err)
		}

		out := cmd.OutOrStdout()
		if level == models.CNSUnset {
			fmt.Fprintln(out, color.GreenString("✓ Cleared CNS fatigue for %s", key))
			return nil
		}
		fmt.Fprintln(out, color.GreenString("✓ CNS fatigue for %s: %s", key, level))
		return nil
	},
}

var dayNoteCmd = &cobra.Command{
	Use:   "note DATE [TEXT...]",
	Short: "Set a day's notes (no text clears them)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseDate(args[0])
		if err != nil {
			return err
		}
		note := strings.Join(args[1:], " ")
		if err := plan.SetNote(key, note); err != nil {
			return fmt.Errorf("failed to set notes: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Updated notes for %s", key))
		return nil
	},
}

func init() {
	dayCNSCmd.Flags().BoolVar(&cnsToggle, "toggle", false, "clear the level if it is already set")

	dayCmd.AddCommand(dayShowCmd, dayStatusCmd, dayCNSCmd, dayNoteCmd)
	rootCmd.AddCommand(dayCmd)
}
