// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation, and embedded file content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestSkillFSReadEmbeddedContent verifies the embedded filesystem can read
// the SKILL.md file correctly.
func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}

	contentStr := string(content)
	if !strings.HasPrefix(contentStr, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}

	expectedMarkers := []string{
		"name: sportplan",
		"description:",
		"mcp__sportplan__get_day",
		"mcp__sportplan__set_session",
		"mcp__sportplan__week_summary",
		"mcp__sportplan__paste_session",
		"## When to use sportplan",
		"## Session shape",
		`"isRepeat": true`,
	}
	for _, marker := range expectedMarkers {
		if !strings.Contains(contentStr, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

// TestSkillMentionsEveryTool keeps the skill in step with the MCP command help.
func TestSkillMentionsEveryTool(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(mcpCmd.Long, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.Contains(fields[0], "_") || strings.Contains(fields[0], "://") {
			continue
		}
		if !strings.Contains(string(content), "mcp__sportplan__"+fields[0]) {
			t.Errorf("SKILL.md does not mention tool %s", fields[0])
		}
	}
}

func TestInstallSkillWithYes(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(&out, strings.NewReader(""), home, true); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	skillPath := filepath.Join(home, ".claude", "skills", "sportplan", "SKILL.md")
	written, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
	embedded, _ := skillFS.ReadFile("skill/SKILL.md")
	if !bytes.Equal(written, embedded) {
		t.Error("Installed skill does not match the embedded file")
	}
	if !strings.Contains(out.String(), "Installed sportplan skill") {
		t.Errorf("Expected success message, got: %s", out.String())
	}
}

func TestInstallSkillPromptDeclined(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(&out, strings.NewReader("n\n"), home, false); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if !strings.Contains(out.String(), "Installation canceled.") {
		t.Errorf("Expected cancel message, got: %s", out.String())
	}
	if _, err := os.Stat(filepath.Join(home, ".claude", "skills", "sportplan")); !os.IsNotExist(err) {
		t.Error("Skill directory should not exist after declining")
	}
}

func TestInstallSkillPromptAccepted(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(&out, strings.NewReader("yes\n"), home, false); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".claude", "skills", "sportplan", "SKILL.md")); err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
}

// TestInstallSkillOverwritesExistingFile verifies that an existing skill file
// is replaced and the user is told about it.
func TestInstallSkillOverwritesExistingFile(t *testing.T) {
	home := t.TempDir()
	skillDir := filepath.Join(home, ".claude", "skills", "sportplan")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	if err := os.MkdirAll(skillDir, 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(skillPath, []byte("# Old Skill\nstale content"), 0600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := installSkill(&out, strings.NewReader(""), home, true); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Error("Expected overwrite note")
	}

	data, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Error("Old content should have been replaced")
	}
	if !strings.Contains(string(data), "name: sportplan") {
		t.Error("Expected new content to contain 'name: sportplan'")
	}
}

// TestSkillInstallDirectoryPermissions verifies the created directory is
// usable by its owner.
func TestSkillInstallDirectoryPermissions(t *testing.T) {
	home := t.TempDir()
	if err := installSkill(&bytes.Buffer{}, strings.NewReader(""), home, true); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(home, ".claude", "skills", "sportplan"))
	if err != nil {
		t.Fatalf("Failed to stat skill directory: %v", err)
	}
	if info.Mode()&0700 != 0700 {
		t.Errorf("Expected owner rwx permissions, got %v", info.Mode())
	}
}
