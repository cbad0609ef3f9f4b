// ABOUTME: CLI commands for gym exercises: add, regroup, reorder, remove, and edit fields.
// ABOUTME: Exercises are addressed by their 1-based position in 'session show'.
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
	exGroup  string
	exSets   int
	exReps   string
	exWeight string
	exRPE    string
)

var errNotGym = errors.New("not a gym session (set --sport Gym first)")

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Edit the exercises of a gym session",
	Long: `Edit the exercises of a gym session.

Exercises are grouped into supersets labelled A-Z and listed by group.
Refer to an exercise by its position as shown in 'sportplan session show'.

EXAMPLES:

  sportplan exercise add today morning "Back Squat" --sets 5 --reps 5 --weight 100
  sportplan exercise add today morning "Pull-up" --group B --reps 8
  sportplan exercise set today morning 1 rpe 8
  sportplan exercise group today morning 2 A     # Move into superset A
  sportplan exercise move today morning 2 up
  sportplan exercise rm today morning 3

FIELDS:

  name, weight, sets, reps, rpe (1-10, - to clear), group`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add DATE SLOT [NAME]",
	Short: "Add an exercise",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseRef(args[0], args[1])
		if err != nil {
			return err
		}
		flags := cmd.Flags()

		var added models.Exercise
		s, err := editSession(ref, func(ed *editor.Editor) error {
			if ed.Session().Sport != models.SportGym {
				return errNotGym
			}
			id, err := ed.AddExercise(exGroup)
			if err != nil {
				return err
			}
			fields := map[string]string{}
			if len(args) == 3 {
				fields["name"] = args[2]
			}
			if flags.Changed("sets") {
				fields["sets"] = strconv.Itoa(exSets)
			}
			if flags.Changed("reps") {
				fields["reps"] = exReps
			}
			if flags.Changed("weight") {
				fields["weight"] = exWeight
			}
			if flags.Changed("rpe") {
				fields["rpe"] = exRPE
			}
			for _, field := range editor.ExerciseFields {
				v, ok := fields[field]
				if !ok {
					continue
				}
				if err := ed.UpdateExercise(id, field, v); err != nil {
					return err
				}
			}
			for _, ex := range ed.Session().Exercises() {
				if ex.ID == id {
					added = ex
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		_, pos := positionOf(s, added.ID)
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Added #%d %s", pos, exerciseLabel(added)))
		return nil
	},
}

func positionOf(s models.Session, id string) (models.Exercise, int) {
	for i, ex := range s.Exercises() {
		if ex.ID == id {
			return ex, i + 1
		}
	}
	return models.Exercise{}, 0
}

func exerciseLabel(ex models.Exercise) string {
	name := ex.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s %s %dx%s", ex.GroupKey(), name, ex.Sets, ex.Reps)
}

var exerciseGroupCmd = &cobra.Command{
	Use:   "group DATE SLOT POS GROUP",
	Short: "Move an exercise to another superset",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editExercise(cmd, args, func(ed *editor.Editor, id string, _ int) error {
			return ed.Regroup(id, args[3])
		})
	},
}

var exerciseMoveCmd = &cobra.Command{
	Use:   "move DATE SLOT POS up|down",
	Short: "Move an exercise up or down one position",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := editor.ParseDirection(args[3])
		if err != nil {
			return err
		}
		return editExercise(cmd, args, func(ed *editor.Editor, _ string, index int) error {
			ed.MoveExercise(index, dir)
			return nil
		})
	},
}

var exerciseRemoveCmd = &cobra.Command{
	Use:     "rm DATE SLOT POS",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove an exercise",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editExercise(cmd, args, func(ed *editor.Editor, id string, _ int) error {
			ed.RemoveExercise(id)
			return nil
		})
	},
}

var exerciseSetCmd = &cobra.Command{
	Use:   "set DATE SLOT POS FIELD VALUE",
	Short: "Set one field of an exercise",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editExercise(cmd, args, func(ed *editor.Editor, id string, _ int) error {
			return ed.UpdateExercise(id, args[3], args[4])
		})
	},
}

// editExercise resolves DATE SLOT POS from args and applies fn to the
// exercise found there.
func editExercise(cmd *cobra.Command, args []string, fn func(ed *editor.Editor, id string, index int) error) error {
	ref, err := parseRef(args[0], args[1])
	if err != nil {
		return err
	}
	s, err := editSession(ref, func(ed *editor.Editor) error {
		cur := ed.Session()
		if cur.Sport != models.SportGym {
			return errNotGym
		}
		id, index, err := exerciseID(cur, args[2])
		if err != nil {
			return err
		}
		return fn(ed, id, index)
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.GreenString("✓ Saved %s", ref))
	renderSession(out, s)
	return nil
}

func init() {
	f := exerciseAddCmd.Flags()
	f.StringVarP(&exGroup, "group", "g", "", "superset group A-Z (default A)")
	f.IntVar(&exSets, "sets", 3, "number of sets")
	f.StringVar(&exReps, "reps", "10", "reps per set, e.g. 5 or 8-12")
	f.StringVarP(&exWeight, "weight", "w", "", "load, e.g. 100 or 70%")
	f.StringVar(&exRPE, "rpe", "", "target RPE 1-10")

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseGroupCmd, exerciseMoveCmd, exerciseRemoveCmd, exerciseSetCmd)
	rootCmd.AddCommand(exerciseCmd)
}
