// ABOUTME: CLI commands for running and cycling structure: steps and repeat blocks.
// ABOUTME: Positions are "3" for a top-level item or "2.1" for a step inside block 2.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/editor"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/spf13/cobra"
)

var (
	stepKind          string
	stepDurationKind  string
	stepDuration      string
	stepIntensityKind string
	stepIntensity     string
	blockRepeats      int
)

var errNotCardio = errors.New("not a running or cycling session (set --sport Running or Cycling first)")

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Edit the workout structure of a run or ride",
	Long: `Edit the workout structure of a running or cycling session.

A structure is a list of steps and repeat blocks. A repeat block holds
steps only and repeats them N times. Refer to items by the positions
shown in 'sportplan session show': "3" for a top-level item, "2.1" for
the first step inside the block at position 2.

STEP FIELDS:

  type            W-up, Run, Recovery, Rest, C-down, Other
  durationType    Distance (km) or Time (mm:ss or hh:mm:ss)
  durationValue   e.g. 0.4 or 02:00
  intensityType   Pace, Heart Rate or None
  intensityValue  e.g. 4:10 or 165

EXAMPLES:

  sportplan step add today evening --type W-up --duration 2
  sportplan step block today evening --repeats 6
  sportplan step set today evening 2.1 durationValue 0.4
  sportplan step set today evening 2.1 intensityValue 1:30
  sportplan step sub today evening 2          # Recovery step inside block 2
  sportplan step repeats today evening 2 8
  sportplan step add today evening --type C-down --duration-type Time --duration 10:00
  sportplan step move today evening 3 up
  sportplan step rm today evening 2.2`,
}

var stepAddCmd = &cobra.Command{
	Use:   "add DATE SLOT",
	Short: "Append a step (default: Run 1.0 km at pace)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editStructure(cmd, args, func(ed *editor.Editor, _ models.Session) error {
			return applyStepFlags(cmd, ed, ed.AddStep(), "")
		})
	},
}

var stepBlockCmd = &cobra.Command{
	Use:   "block DATE SLOT",
	Short: "Append a repeat block",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editStructure(cmd, args, func(ed *editor.Editor, _ models.Session) error {
			id := ed.AddRepeatBlock()
			if cmd.Flags().Changed("repeats") {
				ed.SetRepeats(id, blockRepeats)
			}
			return nil
		})
	},
}

var stepSubCmd = &cobra.Command{
	Use:   "sub DATE SLOT BLOCK",
	Short: "Append a step inside a repeat block (default: Recovery 02:00)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editStructure(cmd, args, func(ed *editor.Editor, cur models.Session) error {
			bid, err := blockID(cur, args[2])
			if err != nil {
				return err
			}
			return applyStepFlags(cmd, ed, ed.AddStepToBlock(bid), bid)
		})
	},
}

var stepMoveCmd = &cobra.Command{
	Use:   "move DATE SLOT POS up|down",
	Short: "Move a step or block one position",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := editor.ParseDirection(args[3])
		if err != nil {
			return err
		}
		return editStructure(cmd, args, func(ed *editor.Editor, cur models.Session) error {
			id, parent, err := componentID(cur, args[2])
			if err != nil {
				return err
			}
			ed.MoveComponent(id, dir, parent)
			return nil
		})
	},
}

var stepRemoveCmd = &cobra.Command{
	Use:     "rm DATE SLOT POS",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a step or block",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editStructure(cmd, args, func(ed *editor.Editor, cur models.Session) error {
			id, parent, err := componentID(cur, args[2])
			if err != nil {
				return err
			}
			ed.RemoveComponent(id, parent)
			return nil
		})
	},
}

var stepSetCmd = &cobra.Command{
	Use:   "set DATE SLOT POS FIELD VALUE",
	Short: "Set one field of a step",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editStructure(cmd, args, func(ed *editor.Editor, cur models.Session) error {
			id, parent, err := componentID(cur, args[2])
			if err != nil {
				return err
			}
			return ed.UpdateStep(id, args[3], args[4], parent)
		})
	},
}

var stepRepeatsCmd = &cobra.Command{
	Use:   "repeats DATE SLOT BLOCK N",
	Short: "Set how often a block repeats (at least 1)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid repeats %q", args[3])
		}
		return editStructure(cmd, args, func(ed *editor.Editor, cur models.Session) error {
			bid, err := blockID(cur, args[2])
			if err != nil {
				return err
			}
			ed.SetRepeats(bid, n)
			return nil
		})
	},
}

// applyStepFlags copies the step flags that were passed onto a new step.
func applyStepFlags(cmd *cobra.Command, ed *editor.Editor, id, parent string) error {
	flags := cmd.Flags()
	for _, f := range []struct {
		flag, field string
		value       *string
	}{
		{"type", "type", &stepKind},
		{"duration-type", "durationType", &stepDurationKind},
		{"duration", "durationValue", &stepDuration},
		{"intensity-type", "intensityType", &stepIntensityKind},
		{"intensity", "intensityValue", &stepIntensity},
	} {
		if !flags.Changed(f.flag) {
			continue
		}
		if err := ed.UpdateStep(id, f.field, *f.value, parent); err != nil {
			return err
		}
	}
	return nil
}

// editStructure resolves DATE SLOT from args, checks the session is
// cardio, and commits fn's edits.
func editStructure(cmd *cobra.Command, args []string, fn func(ed *editor.Editor, cur models.Session) error) error {
	ref, err := parseRef(args[0], args[1])
	if err != nil {
		return err
	}
	s, err := editSession(ref, func(ed *editor.Editor) error {
		cur := ed.Session()
		if !cur.Sport.IsCardio() {
			return errNotCardio
		}
		return fn(ed, cur)
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.GreenString("✓ Saved %s", ref))
	renderSession(out, s)
	return nil
}

func addStepFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&stepKind, "type", "t", "", "W-up, Run, Recovery, Rest, C-down or Other")
	f.StringVar(&stepDurationKind, "duration-type", "", "Distance or Time")
	f.StringVarP(&stepDuration, "duration", "d", "", "km for distance, mm:ss for time")
	f.StringVar(&stepIntensityKind, "intensity-type", "", "Pace, \"Heart Rate\" or None")
	f.StringVarP(&stepIntensity, "intensity", "i", "", "pace (4:10) or heart rate (165)")
}

func init() {
	addStepFlags(stepAddCmd)
	addStepFlags(stepSubCmd)
	stepBlockCmd.Flags().IntVarP(&blockRepeats, "repeats", "r", 2, "number of repeats")

	stepCmd.AddCommand(stepAddCmd, stepBlockCmd, stepSubCmd, stepMoveCmd, stepRemoveCmd, stepSetCmd, stepRepeatsCmd)
	rootCmd.AddCommand(stepCmd)
}
