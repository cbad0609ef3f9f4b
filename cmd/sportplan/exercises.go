// ABOUTME: CLI commands for the exercise name database used for autocomplete.
// ABOUTME: Names saved in gym sessions are added automatically.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Manage known exercise names",
	Long: `Manage the exercise name database.

Every exercise name saved in a gym session is added automatically.
Removing a name does not change sessions that already use it.

EXAMPLES:

  sportplan exercises list           # All names
  sportplan exercises list squat     # Names containing "squat"
  sportplan exercises add "Romanian Deadlift"
  sportplan exercises rm "Romanian Deadlift"`,
}

var exercisesListCmd = &cobra.Command{
	Use:     "list [FILTER]",
	Aliases: []string{"ls"},
	Short:   "List exercise names",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := plan.ExerciseNames(argOr(args, 0))
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "No exercises found.")
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	},
}

var exercisesAddCmd = &cobra.Command{
	Use:   "add NAME...",
	Short: "Add an exercise name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		added, err := plan.AddExerciseName(name)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}
		if !added {
			fmt.Fprintf(cmd.OutOrStdout(), "%q is already known.\n", strings.TrimSpace(name))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Added %s", strings.TrimSpace(name)))
		return nil
	},
}

var exercisesRemoveCmd = &cobra.Command{
	Use:     "rm NAME...",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove an exercise name (exact match)",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		removed, err := plan.RemoveExerciseName(name)
		if err != nil {
			return fmt.Errorf("failed to remove exercise: %w", err)
		}
		if !removed {
			return fmt.Errorf("exercise not found: %s", name)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Removed %s", name))
		return nil
	},
}

func init() {
	exercisesCmd.AddCommand(exercisesListCmd, exercisesAddCmd, exercisesRemoveCmd)
	rootCmd.AddCommand(exercisesCmd)
}
