// ABOUTME: CLI commands for whole sessions: show, set fields, clear, copy/paste, swap, stats.
// ABOUTME: Field edits go through the session editor and are committed in one save.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/editor"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/planner"
	"github.com/harperreed/sportplan/internal/stats"
	"github.com/spf13/cobra"
)

var (
	sessionSport   string
	sessionSubType string
	sessionTime    string
	sessionNotes   string
	sessionRPE     string
	sessionPhase   string
)

// editSession opens an editor on the session at ref, applies fn, and
// saves the buffer back. Nothing is written when fn fails.
func editSession(ref planner.SlotRef, fn func(*editor.Editor) error) (models.Session, error) {
	cur, err := plan.Session(ref)
	if err != nil {
		return models.Session{}, err
	}

	ed := editor.Open(cur)
	if err := fn(ed); err != nil {
		ed.Cancel()
		return models.Session{}, err
	}
	s, err := ed.Save()
	if err != nil {
		return models.Session{}, err
	}
	if err := plan.SaveSession(ref, s); err != nil {
		return models.Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	logger.Debug("session edited", "ref", ref.String())
	return s, nil
}

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Plan and edit sessions",
	Long: `Plan and edit the morning and evening sessions of a day.

SPORTS:

  Gym        exercises grouped in supersets (see 'sportplan exercise')
  Running    structured workout with steps and repeat blocks (see 'sportplan step')
  Cycling    same as running
  Football, Rest, Other   free-form (sub-type, time, notes, RPE)

EXAMPLES:

  sportplan session set today morning --sport Gym --sub-type Push --time 07:00
  sportplan session set today evening --sport Running --sub-type "Tempo run" --rpe 7
  sportplan session show today morning
  sportplan session copy today morning
  sportplan session paste 2024-06-10 morning
  sportplan session swap today morning tomorrow morning
  sportplan session clear today evening
  sportplan session subtypes Running`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show DATE SLOT",
	Short: "Show a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}
		s, err := plan.Session(ref)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.CyanString(ref.String()))
		renderSession(out, s)
		return nil
	},
}

var sessionSetCmd = &cobra.Command{
	Use:   "set DATE SLOT",
	Short: "Set session fields",
	Long: `Set the fields of a session. Only the flags you pass are changed.

Changing the sport discards the sub-type, exercises and workout structure.
Pass --rpe none to clear the RPE, and --sport none to empty the slot's sport.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}
		flags := cmd.Flags()

		s, err := editSession(ref, func(ed *editor.Editor) error {
			if flags.Changed("sport") {
				sport, err := models.ParseSport(sessionSport)
				if err != nil {
					return err
				}
				if sport != ed.Session().Sport {
					ed.SetSport(sport)
				}
			}
			if flags.Changed("sub-type") {
				ed.SetSubType(sessionSubType)
			}
			if flags.Changed("time") {
				ed.SetTime(sessionTime)
			}
			if flags.Changed("notes") {
				ed.SetNotes(sessionNotes)
			}
			if flags.Changed("phase") {
				ed.SetPeriodization(sessionPhase)
			}
			if flags.Changed("rpe") {
				rpe, err := parseRPE(sessionRPE)
				if err != nil {
					return err
				}
				ed.SetRPE(rpe)
			}
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Saved %s: %s", ref, labelOrEmpty(s)))
		return nil
	},
}

func parseRPE(v string) (*int, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "none", "-":
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 || n > 10 {
		return nil, fmt.Errorf("invalid RPE %q (use 0-10 or none)", v)
	}
	return &n, nil
}

func labelOrEmpty(s models.Session) string {
	if s.IsEmpty() {
		return "(empty)"
	}
	return s.Label()
}

var sessionClearCmd = &cobra.Command{
	Use:     "clear DATE SLOT",
	Aliases: []string{"rm"},
	Short:   "Empty a session slot",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}
		if err := plan.ClearSession(ref); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Cleared %s", ref))
		return nil
	},
}

var sessionCopyCmd = &cobra.Command{
	Use:     "copy DATE SLOT",
	Aliases: []string{"cp"},
	Short:   "Copy a session to the clipboard",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}
		s, err := plan.Copy(ref)
		if err != nil {
			return fmt.Errorf("failed to copy session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Copied %s: %s", ref, labelOrEmpty(s)))
		return nil
	},
}

var sessionPasteCmd = &cobra.Command{
	Use:   "paste DATE SLOT",
	Short: "Paste the clipboard into a session slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}
		s, err := plan.Paste(ref)
		if err != nil {
			return fmt.Errorf("failed to paste session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Pasted into %s: %s", ref, labelOrEmpty(s)))
		return nil
	},
}

var sessionSwapCmd = &cobra.Command{
	Use:   "swap DATE SLOT DATE SLOT",
	Short: "Swap two sessions",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}
		b, err := parseRef(args[2], args[3])
		if err != nil {
			return err
		}
		if err := plan.Swap(a, b); err != nil {
			return fmt.Errorf("failed to swap sessions: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Swapped %s and %s", a, b))
		return nil
	},
}

var sessionStatsCmd = &cobra.Command{
	Use:   "stats DATE SLOT",
	Short: "Estimate distance and time of a cardio session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}
		s, err := plan.Session(ref)
		if err != nil {
			return err
		}
		st := stats.Compute(s)
		if st.IsZero() {
			fmt.Fprintln(cmd.OutOrStdout(), "No distance or time planned.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), st.String())
		return nil
	},
}

var sessionSubTypesCmd = &cobra.Command{
	Use:   "subtypes [SPORT]",
	Short: "List suggested sub-types and phases",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		sports := models.AllSports
		if len(args) == 1 {
			sport, err := models.ParseSport(args[0])
			if err != nil {
				return err
			}
			sports = []models.Sport{sport}
		}
		for _, sp := range sports {
			if subs := models.SubTypes[sp]; len(subs) > 0 {
				fmt.Fprintf(out, "%s: %s\n", color.CyanString(string(sp)), strings.Join(subs, ", "))
			}
		}
		if len(args) == 0 {
			fmt.Fprintf(out, "%s: %s\n", color.CyanString("Phases"), strings.Join(models.PeriodizationOptions, ", "))
		}
		return nil
	},
}

func init() {
	f := sessionSetCmd.Flags()
	f.StringVar(&sessionSport, "sport", "", "Gym, Running, Cycling, Football, Rest, Other or none")
	f.StringVar(&sessionSubType, "sub-type", "", "sub-type, e.g. \"Tempo run\" or Push")
	f.StringVar(&sessionTime, "time", "", "time of day, e.g. 07:00")
	f.StringVar(&sessionNotes, "notes", "", "session notes")
	f.StringVar(&sessionRPE, "rpe", "", "perceived exertion 0-10, or none")
	f.StringVar(&sessionPhase, "phase", "", "session periodization label")

	sessionCmd.AddCommand(sessionShowCmd, sessionSetCmd, sessionClearCmd, sessionCopyCmd,
		sessionPasteCmd, sessionSwapCmd, sessionStatsCmd, sessionSubTypesCmd)
	rootCmd.AddCommand(sessionCmd)
}
