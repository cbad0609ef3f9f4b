// ABOUTME: CLI commands for plan views: the multi-week window, month grid, and week phases.
// ABOUTME: Views are read-only except for week phase labels.
package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/planner"
	"github.com/harperreed/sportplan/internal/stats"
	"github.com/spf13/cobra"
)

var (
	planFrom   string
	planWeeks  int
	phaseClear bool
)

var planCmd = &cobra.Command{
	Use:     "plan",
	Aliases: []string{"p", "ls"},
	Short:   "Show the planning window",
	Long: `Show consecutive training weeks, starting at the Monday of the current week.

Each day line shows: DAY DATE STATUS  MORNING | EVENING  (CNS)

Running and cycling sessions show their estimated distance. Each week
ends with its session counts and cardio totals. Missed days do not count.

EXAMPLES:

  sportplan plan                       # Default window (8 weeks)
  sportplan plan --weeks 2             # Just this week and next
  sportplan plan --from 2024-06-01     # Window containing a past date`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDateTime(planFrom)
		if err != nil {
			return err
		}
		weeks := planWeeks
		if weeks <= 0 {
			weeks = cfg.GetWindowWeeks()
		}

		out := cmd.OutOrStdout()
		for i, w := range plan.Plan(start, weeks) {
			if i > 0 {
				fmt.Fprintln(out)
			}
			renderWeek(out, w)
		}
		return nil
	},
}

func renderWeek(w io.Writer, week planner.WeekView) {
	title := fmt.Sprintf("Week %d  %s", week.Number, week.Start)
	if week.Phase != "" {
		title += "  " + color.YellowString(week.Phase)
	}
	fmt.Fprintln(w, color.New(color.Bold).Sprint(title))
	for _, e := range week.Days {
		renderDayLine(w, e.Key, e.Day)
	}
	renderSummary(w, week.Summary)
}

var monthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Show a month calendar with totals",
	Long: `Show a calendar of one month, defaulting to the current month.

Days with a planned session are marked with *. Completed days show ✓ and
missed days ✗. Days outside the month are dimmed and excluded from the totals.

EXAMPLES:

  sportplan month            # This month
  sportplan month 2024-06    # June 2024`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		year, month, err := planner.ParseMonth(arg)
		if err != nil {
			return err
		}

		grid := plan.MonthView(year, month)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.New(color.Bold).Sprint(grid.Title()))
		fmt.Fprintln(out, faint.Sprint(" Mon  Tue  Wed  Thu  Fri  Sat  Sun"))
		for _, week := range grid.Weeks {
			var row strings.Builder
			for _, c := range week {
				t, _ := planner.ParseDateKey(c.Key)
				mark := " "
				switch {
				case c.Day.Status != "" && c.Day.Status != models.StatusNeutral:
					mark = statusMark(c.Day.Status)
				case c.Day.IsPlanned():
					mark = "*"
				}
				txt := fmt.Sprintf("%3d%s ", t.Day(), mark)
				if !c.InMonth {
					txt = faint.Sprint(txt)
				}
				row.WriteString(txt)
			}
			fmt.Fprintln(out, row.String())
		}
		fmt.Fprintln(out)
		renderBreakdown(out, grid.Summary)
		return nil
	},
}

// renderBreakdown lists session counts per sport and sub-type.
func renderBreakdown(w io.Writer, s *stats.Summary) {
	if s.Total() == 0 {
		fmt.Fprintln(w, "No sessions planned.")
		return
	}
	for _, sp := range s.Sports() {
		fmt.Fprintf(w, "%s %dx\n", color.CyanString(string(sp)), s.Count(sp))
		order, counts := s.Breakdown(sp)
		for _, sub := range order {
			fmt.Fprintf(w, "  %s %d\n", padRight(sub, 28), counts[sub])
		}
	}
	if !s.Running.IsZero() {
		fmt.Fprintf(w, "Running total: %s\n", s.Running)
	}
	if !s.Cycling.IsZero() {
		fmt.Fprintf(w, "Cycling total: %s\n", s.Cycling)
	}
}

var weekCmd = &cobra.Command{
	Use:     "week",
	Aliases: []string{"w"},
	Short:   "Show a week or label its phase",
}

var weekShowCmd = &cobra.Command{
	Use:   "show [DATE]",
	Short: "Show the week containing a date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseDate(argOr(args, 0))
		if err != nil {
			return err
		}
		week, err := plan.Week(key)
		if err != nil {
			return err
		}
		renderWeek(cmd.OutOrStdout(), week)
		return nil
	},
}

var weekPhaseCmd = &cobra.Command{
	Use:   "phase DATE [PHASE]",
	Short: "Show or set the periodization phase of a week",
	Long: `Show or set the periodization label of the week containing DATE.

Suggested phases: Week 1-4, Deload, Peak Week, Hypertrophy, Strength,
Power, Other. Any text is accepted.

EXAMPLES:

  sportplan week phase today                 # Show this week's phase
  sportplan week phase today Deload          # Label this week
  sportplan week phase 2024-06-05 --clear    # Remove the label`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseDate(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 1 && !phaseClear {
			phase, err := plan.Phase(key)
			if err != nil {
				return err
			}
			if phase == "" {
				fmt.Fprintln(out, "No phase set.")
				return nil
			}
			fmt.Fprintln(out, phase)
			return nil
		}

		phase := ""
		if !phaseClear {
			phase = args[1]
		}
		if err := plan.SetPhase(key, phase); err != nil {
			return fmt.Errorf("failed to set phase: %w", err)
		}
		monday := planner.DateKey(planner.MondayOf(mustDate(key)))
		if phase == "" {
			fmt.Fprintln(out, color.GreenString("✓ Cleared phase for week of %s", monday))
		} else {
			fmt.Fprintln(out, color.GreenString("✓ Week of %s: %s", monday, phase))
		}
		return nil
	},
}

func argOr(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// mustDate parses a key that has already been validated.
func mustDate(key string) time.Time {
	t, _ := planner.ParseDateKey(key)
	return t
}

func init() {
	planCmd.Flags().StringVar(&planFrom, "from", "", "any date in the first week (default today)")
	planCmd.Flags().IntVarP(&planWeeks, "weeks", "n", 0, "number of weeks (default from config, 8)")
	weekPhaseCmd.Flags().BoolVar(&phaseClear, "clear", false, "remove the phase label")

	weekCmd.AddCommand(weekShowCmd, weekPhaseCmd)
	rootCmd.AddCommand(planCmd, monthCmd, weekCmd)
}
