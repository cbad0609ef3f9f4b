// ABOUTME: CLI commands for the fitness profile: threshold zones and gym PRs.
// ABOUTME: Running zones double as pace and heart rate presets in the step editor.
package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/spf13/cobra"
)

var (
	zonePace string
	zoneHR   string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the fitness profile",
	Long: `Show or edit the fitness profile.

ZONES:

  Running and cycling each have three thresholds: lt1, lt2 and vo2.
  Each holds a pace (running) or power (cycling) and a heart rate.

GYM PRS:

  Personal records are reference weights by exercise name.

EXAMPLES:

  sportplan profile show
  sportplan profile zone running lt2 --pace 4:10 --hr 172
  sportplan profile zone cycling lt1 --pace 210
  sportplan profile pr Squat 140
  sportplan profile pr "Bench Press" 100
  sportplan profile pr rm 3`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show zones and PRs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderProfile(cmd.OutOrStdout(), plan.Profile())
		return nil
	},
}

func renderProfile(w io.Writer, p models.FitnessProfile) {
	for _, sp := range []struct {
		name  string
		unit  string
		zones models.Zones
	}{
		{"Running", "pace", p.Running},
		{"Cycling", "power", p.Cycling},
	} {
		fmt.Fprintln(w, color.CyanString(sp.name))
		for _, name := range models.ZoneNames {
			z, _ := sp.zones.Zone(name)
			fmt.Fprintf(w, "  %s  %s %s  hr %s\n",
				padRight(strings.ToUpper(name), 3), sp.unit, orDash(z.PaceOrPower), orDash(z.HR))
		}
	}
	fmt.Fprintln(w, color.CyanString("Gym PRs"))
	if len(p.Gym) == 0 {
		fmt.Fprintln(w, faint.Sprint("  (none)"))
	}
	for i, pr := range p.Gym {
		fmt.Fprintf(w, "  %2d  %s %s\n", i+1, padRight(pr.Name, 20), orDash(pr.Weight))
	}
}

func orDash(s string) string {
	if s == "" {
		return faint.Sprint("-")
	}
	return s
}

var profileZoneCmd = &cobra.Command{
	Use:   "zone running|cycling lt1|lt2|vo2",
	Short: "Set a threshold zone",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("pace") && !flags.Changed("hr") {
			return fmt.Errorf("nothing to set: pass --pace and/or --hr")
		}
		err := plan.UpdateProfile(func(p *models.FitnessProfile) error {
			var zones *models.Zones
			switch strings.ToLower(args[0]) {
			case "running", "run":
				zones = &p.Running
			case "cycling", "bike", "ride":
				zones = &p.Cycling
			default:
				return fmt.Errorf("unknown sport %q (use running or cycling)", args[0])
			}
			z, err := zones.Zone(args[1])
			if err != nil {
				return err
			}
			if flags.Changed("pace") {
				z.PaceOrPower = zonePace
			}
			if flags.Changed("hr") {
				z.HR = zoneHR
			}
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Updated %s %s", strings.ToLower(args[0]), strings.ToUpper(args[1])))
		return nil
	},
}

var profilePRCmd = &cobra.Command{
	Use:   "pr NAME WEIGHT",
	Short: "Set a gym PR (matched by name, case-insensitive)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, weight := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
		if name == "" {
			return fmt.Errorf("PR name must not be empty")
		}
		err := plan.UpdateProfile(func(p *models.FitnessProfile) error {
			i := slices.IndexFunc(p.Gym, func(pr models.GymPR) bool { return strings.EqualFold(pr.Name, name) })
			if i < 0 {
				p.Gym = append(p.Gym, models.NewGymPR(name, weight))
				return nil
			}
			p.Gym[i].Weight = weight
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ %s: %s", name, weight))
		return nil
	},
}

var profilePRRemoveCmd = &cobra.Command{
	Use:   "rm POS|NAME",
	Short: "Remove a gym PR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var removed string
		err := plan.UpdateProfile(func(p *models.FitnessProfile) error {
			i := slices.IndexFunc(p.Gym, func(pr models.GymPR) bool { return strings.EqualFold(pr.Name, args[0]) })
			if n, err := strconv.Atoi(args[0]); err == nil && i < 0 {
				i = n - 1
			}
			if i < 0 || i >= len(p.Gym) {
				return fmt.Errorf("PR not found: %s", args[0])
			}
			removed = p.Gym[i].Name
			p.Gym = slices.Delete(p.Gym, i, i+1)
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Removed PR %s", removed))
		return nil
	},
}

func init() {
	profileZoneCmd.Flags().StringVar(&zonePace, "pace", "", "pace (running) or power (cycling)")
	profileZoneCmd.Flags().StringVar(&zoneHR, "hr", "", "heart rate")

	profilePRCmd.AddCommand(profilePRRemoveCmd)
	profileCmd.AddCommand(profileShowCmd, profileZoneCmd, profilePRCmd)
	rootCmd.AddCommand(profileCmd)
}
