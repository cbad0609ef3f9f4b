// ABOUTME: Install Claude Code skill for sportplan
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the sportplan skill for Claude Code.

This copies the skill definition to ~/.claude/skills/sportplan/
so Claude Code can use sportplan commands contextually.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(cmd.OutOrStdout(), cmd.InOrStdin(), home, skillSkipConfirm)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func installSkill(w io.Writer, in io.Reader, home string, skipConfirm bool) error {
	skillDir := filepath.Join(home, ".claude", "skills", "sportplan")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	fmt.Fprintln(w, "┌─────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│            Sportplan Skill for Claude Code                  │")
	fmt.Fprintln(w, "└─────────────────────────────────────────────────────────────┘")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "This will install the sportplan skill, enabling Claude Code to:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  • Plan gym, running and cycling sessions")
	fmt.Fprintln(w, "  • Build interval workouts with repeat blocks")
	fmt.Fprintln(w, "  • Copy, paste and swap sessions across weeks")
	fmt.Fprintln(w, "  • Summarize weekly and monthly training load")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Destination:")
	fmt.Fprintf(w, "  %s\n", skillPath)
	fmt.Fprintln(w)

	if _, err := os.Stat(skillPath); err == nil {
		fmt.Fprintln(w, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(w)
	}

	if !skipConfirm {
		fmt.Fprint(w, "Install the sportplan skill? [y/N] ")
		reader := bufio.NewReader(in)
		response, err := reader.ReadString('\n')
		if err != nil && response == "" {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(w, "Installation canceled.")
			return nil
		}
		fmt.Fprintln(w)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(skillDir, 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(skillPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	fmt.Fprintln(w, "✓ Installed sportplan skill successfully!")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Claude Code will now recognize /sportplan commands.")
	fmt.Fprintln(w, "Try asking Claude: \"Plan a tempo run for Thursday evening\" or \"How much did I run this month?\"")
	return nil
}
