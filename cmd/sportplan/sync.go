// ABOUTME: CLI commands for Charm-based sync of the charm backend.
// ABOUTME: Supports link, unlink, status, now, repair, reset, and wipe operations.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/storage"
	"github.com/spf13/cobra"
)

// noPlanner marks commands that must not open the store themselves.
const noPlanner = "no-planner"

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the plan across devices (charm backend)",
	Long: `Sync the plan across devices using Charm Cloud.

Sync applies to the charm backend. Your data is E2E encrypted with your
SSH key before upload. Switch an existing plan over with:

  sportplan migrate --to charm --save-config

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     sportplan sync link

  2. On other devices, link with the same Charm account:
     sportplan sync link

  3. Check sync status:
     sportplan sync status

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  now         Sync immediately
  repair      Repair database corruption
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each change.`,
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this device to Charm",
	Annotations: map[string]string{noPlanner: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("\n✓ Device linked to Charm"))
		fmt.Fprintln(cmd.OutOrStdout(), "Use the charm backend to sync your plan across devices.")
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:         "unlink",
	Short:       "Disconnect from Charm",
	Annotations: map[string]string{noPlanner: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Device unlinked from Charm"))
		fmt.Fprintln(cmd.OutOrStdout(), "Your local plan is preserved.")
		return nil
	},
}

func runCharm(arg string) error {
	charmCmd := exec.Command("charm", arg)
	charmCmd.Stdin = os.Stdin
	charmCmd.Stdout = os.Stdout
	charmCmd.Stderr = os.Stderr
	return charmCmd.Run()
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Backend:", cfg.GetBackend())

		id, err := storage.CharmID()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("Not linked to Charm"))
			fmt.Fprintln(out, "\nRun 'sportplan sync link' to connect to Charm.")
			return nil
		}
		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Server:", os.Getenv("CHARM_HOST"))
		fmt.Fprintln(out)

		cs, ok := store.(*storage.CharmStore)
		if !ok {
			fmt.Fprintln(out, color.YellowString("Sync is off: the %s backend stays on this device.", cfg.GetBackend()))
			fmt.Fprintln(out, "Run 'sportplan migrate --to charm --save-config' to sync this plan.")
			return nil
		}
		if cs.IsReadOnly() {
			fmt.Fprintln(out, color.YellowString("⚠ Read-only: another process holds the database"))
		} else {
			fmt.Fprintln(out, color.GreenString("✓ Connected to Charm"))
		}
		st := plan.Snapshot()
		planned := 0
		for _, d := range st.Days {
			if d.IsPlanned() {
				planned++
			}
		}
		fmt.Fprintf(out, "  Days: %s (%s planned)\n", humanize.Comma(int64(len(st.Days))), humanize.Comma(int64(planned)))
		fmt.Fprintf(out, "  Week phases: %d\n", len(st.Weeks))
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync with Charm Cloud immediately",
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, ok := store.(*storage.CharmStore)
		if !ok {
			return fmt.Errorf("sync needs the charm backend (current: %s)", cfg.GetBackend())
		}
		if err := cs.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Synced"))
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:         "wipe",
	Short:       "Delete all cloud and local data",
	Annotations: map[string]string{noPlanner: "true"},
	Long: `Delete all cloud backups and local data of the charm backend.

This is a DESTRUCTIVE operation. The whole synced plan will be permanently deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will PERMANENTLY DELETE all cloud backups and the local synced plan.")
		fmt.Fprint(out, "Type 'wipe' to confirm: ")
		if readLine(cmd) != "wipe" {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		result, err := kv.Wipe(storage.CharmDBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("✓ Data wiped successfully"))
		fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(out, "  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:         "repair",
	Short:       "Repair database corruption",
	Annotations: map[string]string{noPlanner: "true"},
	Long: `Repair the charm backend database by checkpointing WAL, removing SHM files,
checking integrity, and vacuuming.

Use this when you encounter database lock errors or corruption.
Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Repairing sportplan database...")
		result, err := kv.Repair(storage.CharmDBName, force)

		if result.WalCheckpointed {
			fmt.Fprintln(out, color.GreenString("  ✓ WAL checkpointed"))
		}
		if result.ShmRemoved {
			fmt.Fprintln(out, color.GreenString("  ✓ SHM file removed"))
		}
		if result.IntegrityOK {
			fmt.Fprintln(out, color.GreenString("  ✓ Integrity check passed"))
		} else {
			fmt.Fprintln(out, color.RedString("  ✗ Integrity check failed"))
		}
		if result.Vacuumed {
			fmt.Fprintln(out, color.GreenString("  ✓ Database vacuumed"))
		}

		if err != nil {
			if !force {
				fmt.Fprintln(out, color.YellowString("\nRun with --force to attempt recovery."))
			}
			return fmt.Errorf("repair failed: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("\n✓ Repair complete"))
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Reset local data and restore from cloud",
	Annotations: map[string]string{noPlanner: "true"},
	Long: `Delete the local synced plan and restore it from Charm Cloud.

Use this to fix sync conflicts or reset a device to the cloud state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will DELETE the local synced plan and restore it from cloud.")
		fmt.Fprint(out, "Continue? [y/N]: ")
		if answer := strings.ToLower(readLine(cmd)); answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		if err := kv.Reset(storage.CharmDBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("✓ Local data reset and restored from cloud"))
		return nil
	},
}

func readLine(cmd *cobra.Command) string {
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	syncCmd.AddCommand(syncLinkCmd, syncUnlinkCmd, syncStatusCmd, syncNowCmd,
		syncRepairCmd, syncResetCmd, syncWipeCmd)

	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")

	rootCmd.AddCommand(syncCmd)
}
