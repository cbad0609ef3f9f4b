// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against a temporary SQLite data dir and inspects the stored plan.
package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/harperreed/sportplan/internal/config"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/planner"
	"github.com/harperreed/sportplan/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	today := planner.Today()
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty is today", input: "", want: planner.DateKey(today)},
		{name: "today", input: "today", want: planner.DateKey(today)},
		{name: "tomorrow", input: "tomorrow", want: planner.DateKey(today.AddDate(0, 0, 1))},
		{name: "yesterday", input: "yesterday", want: planner.DateKey(today.AddDate(0, 0, -1))},
		{name: "date key", input: "2024-06-03", want: "2024-06-03"},
		{name: "wrong order", input: "03-06-2024", wantErr: true},
		{name: "not a date", input: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDate(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRef(t *testing.T) {
	ref, err := parseRef("2024-06-03", "pm")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03/evening", ref.String())

	_, err = parseRef("2024-06-03", "noon")
	assert.ErrorIs(t, err, planner.ErrInvalidSlot)
}

func TestParseRPE(t *testing.T) {
	rpe, err := parseRPE("7")
	require.NoError(t, err)
	require.NotNil(t, rpe)
	assert.Equal(t, 7, *rpe)

	rpe, err = parseRPE("none")
	require.NoError(t, err)
	assert.Nil(t, rpe)

	_, err = parseRPE("11")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world this is a long string", 10, "hello w..."},
		{"", 10, ""},
		{"hello", 3, "..."},
		{"Monday", 3, "..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"hi", 5, "hi   "},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello world"},
		{"", 5, "     "},
		{"hello", 0, "hello"},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func intervalSession() models.Session {
	s := models.NewSession("t2-1")
	s.SetSport(models.SportRunning)
	warm := models.NewStep()
	block := models.NewRepeatBlock()
	block.Steps = append(block.Steps, models.NewRecoveryStep())
	s.SetStructure(models.Structure{warm, block})
	return s
}

func TestComponentID(t *testing.T) {
	s := intervalSession()
	st := s.Structure()
	block := st[1].(models.RepeatBlock)

	id, parent, err := componentID(s, "1")
	require.NoError(t, err)
	assert.Equal(t, st[0].ComponentID(), id)
	assert.Empty(t, parent)

	id, parent, err = componentID(s, "2.2")
	require.NoError(t, err)
	assert.Equal(t, block.Steps[1].ID, id)
	assert.Equal(t, block.ID, parent)

	id, parent, err = componentID(s, block.Steps[0].ID)
	require.NoError(t, err)
	assert.Equal(t, block.Steps[0].ID, id)
	assert.Equal(t, block.ID, parent)

	for _, bad := range []string{"0", "3", "1.1", "2.3", "nope"} {
		_, _, err := componentID(s, bad)
		assert.Error(t, err, "position %q", bad)
	}

	bid, err := blockID(s, "2")
	require.NoError(t, err)
	assert.Equal(t, block.ID, bid)
	_, err = blockID(s, "1")
	assert.Error(t, err)
}

func TestExerciseID(t *testing.T) {
	s := models.NewSession("t1-1")
	s.SetSport(models.SportGym)
	a, b := models.NewExercise("A"), models.NewExercise("B")
	s.SetExercises([]models.Exercise{a, b})

	id, index, err := exerciseID(s, "2")
	require.NoError(t, err)
	assert.Equal(t, b.ID, id)
	assert.Equal(t, 1, index)

	id, _, err = exerciseID(s, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, id)

	_, _, err = exerciseID(s, "3")
	assert.Error(t, err)
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "sportplan" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "sportplan")
	}
	for _, name := range []string{"data-dir", "backend", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent --%s flag", name)
		}
	}

	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range []string{
		"plan", "month", "week", "day", "session", "exercise", "step",
		"exercises", "profile", "backup", "restore", "export", "migrate",
		"mcp", "install-skill", "sync",
	} {
		if !registered[name] {
			t.Errorf("Expected %s command to be registered", name)
		}
	}
}

func TestSubcommands(t *testing.T) {
	tests := map[*cobra.Command][]string{
		sessionCmd:  {"show", "set", "clear", "copy", "paste", "swap", "stats", "subtypes"},
		exerciseCmd: {"add", "group", "move", "rm", "set"},
		stepCmd:     {"add", "block", "sub", "move", "rm", "set", "repeats"},
		dayCmd:      {"show", "status", "cns", "note"},
		weekCmd:     {"show", "phase"},
		syncCmd:     {"link", "unlink", "status", "now", "repair", "reset", "wipe"},
	}
	for parent, want := range tests {
		names := map[string]bool{}
		for _, c := range parent.Commands() {
			names[c.Name()] = true
		}
		for _, w := range want {
			if !names[w] {
				t.Errorf("Expected %s subcommand %q", parent.Name(), w)
			}
		}
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	assert.ElementsMatch(t, []string{"json", "yaml", "markdown"}, exportCmd.ValidArgs)
}

// testCLI runs commands against a temp data dir with an isolated config.
type testCLI struct {
	t   *testing.T
	dir string
}

func setupTestCLI(t *testing.T) *testCLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvBackend, "")
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvWeeks, "")
	color.NoColor = true
	return &testCLI{t: t, dir: t.TempDir()}
}

// resetFlags restores every flag to its default so state from a previous
// Execute does not leak into the next one.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func (c *testCLI) runWithInput(input string, args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(append([]string{"--data-dir", c.dir, "--backend", "sqlite"}, args...))
	err := Execute()
	return out.String(), err
}

func (c *testCLI) run(args ...string) string {
	c.t.Helper()
	out, err := c.runWithInput("", args...)
	require.NoError(c.t, err, "sportplan %s\n%s", strings.Join(args, " "), out)
	return out
}

// inspect opens the stored plan read-only for assertions.
func (c *testCLI) inspect(fn func(p *planner.Planner)) {
	c.t.Helper()
	store, err := storage.OpenSQLite(storage.SQLitePath(c.dir))
	require.NoError(c.t, err)
	defer store.Close()
	p, err := planner.Open(store, log.New(io.Discard))
	require.NoError(c.t, err)
	fn(p)
}

func (c *testCLI) session(date, slot string) models.Session {
	c.t.Helper()
	var s models.Session
	c.inspect(func(p *planner.Planner) {
		ref, err := planner.ParseSlotRef(date, slot)
		require.NoError(c.t, err)
		s, err = p.Session(ref)
		require.NoError(c.t, err)
	})
	return s
}

func TestSessionSetAndShow(t *testing.T) {
	cli := setupTestCLI(t)

	out := cli.run("session", "set", "2024-06-04", "evening",
		"--sport", "running", "--sub-type", "Tempo", "--time", "18:00", "--rpe", "7")
	assert.Contains(t, out, "Saved 2024-06-04/evening: Tempo run")

	s := cli.session("2024-06-04", "evening")
	assert.Equal(t, models.SportRunning, s.Sport)
	assert.Equal(t, "Tempo", s.SubType)
	assert.Equal(t, "18:00", s.Time)
	require.NotNil(t, s.RPE)
	assert.Equal(t, 7, *s.RPE)
	assert.NotNil(t, s.Structure(), "cardio sessions get an empty structure")

	// Only passed flags change.
	cli.run("session", "set", "2024-06-04", "evening", "--notes", "hilly", "--rpe", "none")
	s = cli.session("2024-06-04", "evening")
	assert.Equal(t, "Tempo", s.SubType)
	assert.Equal(t, "hilly", s.Notes)
	assert.Nil(t, s.RPE)

	out = cli.run("session", "show", "2024-06-04", "pm")
	assert.Contains(t, out, "Tempo run")
	assert.Contains(t, out, "18:00")
}

func TestSessionSetSportChangeDropsSubType(t *testing.T) {
	cli := setupTestCLI(t)

	cli.run("session", "set", "2024-06-04", "morning", "--sport", "Gym", "--sub-type", "Push")
	cli.run("session", "set", "2024-06-04", "morning", "--sport", "Cycling")

	s := cli.session("2024-06-04", "morning")
	assert.Equal(t, models.SportCycling, s.Sport)
	assert.Empty(t, s.SubType)
	assert.Nil(t, s.Exercises())
}

func TestSessionSetInvalid(t *testing.T) {
	cli := setupTestCLI(t)

	_, err := cli.runWithInput("", "session", "set", "2024-06-04", "morning", "--sport", "curling")
	assert.Error(t, err)
	_, err = cli.runWithInput("", "session", "set", "2024-13-04", "morning", "--sport", "Gym")
	assert.Error(t, err)
	_, err = cli.runWithInput("", "session", "set", "2024-06-04", "noon", "--sport", "Gym")
	assert.Error(t, err)
}

func TestStepWorkflow(t *testing.T) {
	cli := setupTestCLI(t)
	cli.run("session", "set", "2024-06-04", "evening", "--sport", "Running", "--sub-type", "Tempo run")

	cli.run("step", "add", "2024-06-04", "evening", "--duration", "8", "--intensity", "4:10")
	out := cli.run("session", "stats", "2024-06-04", "evening")
	assert.Contains(t, out, "8.0 km / ~33 min")

	cli.run("step", "rm", "2024-06-04", "evening", "1")
	cli.run("step", "block", "2024-06-04", "evening", "--repeats", "4")
	cli.run("step", "set", "2024-06-04", "evening", "1.1", "durationValue", "0.4")
	cli.run("step", "set", "2024-06-04", "evening", "1.1", "intensityValue", "1:30")
	out = cli.run("session", "stats", "2024-06-04", "evening")
	assert.Contains(t, out, "1.6 km / ~2 min")

	out = cli.run("step", "sub", "2024-06-04", "evening", "1")
	assert.Contains(t, out, "1.2  Recovery 02:00")

	cli.run("step", "repeats", "2024-06-04", "evening", "1", "0")
	s := cli.session("2024-06-04", "evening")
	require.Len(t, s.Structure(), 1)
	block, ok := s.Structure()[0].(models.RepeatBlock)
	require.True(t, ok)
	assert.Equal(t, 1, block.Repeats, "repeats are clamped to at least 1")
	require.Len(t, block.Steps, 2)
	assert.Equal(t, models.StepRecovery, block.Steps[1].Kind)
}

func TestStepRejectsNonCardio(t *testing.T) {
	cli := setupTestCLI(t)
	cli.run("session", "set", "2024-06-04", "morning", "--sport", "Gym")

	_, err := cli.runWithInput("", "step", "add", "2024-06-04", "morning")
	assert.ErrorIs(t, err, errNotCardio)
}

func TestExerciseWorkflow(t *testing.T) {
	cli := setupTestCLI(t)
	cli.run("session", "set", "2024-06-03", "morning", "--sport", "Gym", "--sub-type", "Legs")

	out := cli.run("exercise", "add", "2024-06-03", "morning", "Back Squat",
		"--sets", "5", "--reps", "5", "--weight", "100", "--rpe", "8")
	assert.Contains(t, out, "Added #1 A Back Squat 5x5")
	cli.run("exercise", "add", "2024-06-03", "morning", "Nordic Curl", "--group", "B")
	cli.run("exercise", "add", "2024-06-03", "morning", "Split Squat")

	s := cli.session("2024-06-03", "morning")
	ex := s.Exercises()
	require.Len(t, ex, 3)
	assert.Equal(t, []string{"Back Squat", "Split Squat", "Nordic Curl"},
		[]string{ex[0].Name, ex[1].Name, ex[2].Name}, "ungrouped adds join A and sort by group")
	assert.Equal(t, "8", ex[0].RPE)
	assert.Equal(t, "100", ex[0].Weight)

	cli.run("exercise", "group", "2024-06-03", "morning", "1", "C")
	cli.run("exercise", "set", "2024-06-03", "morning", "1", "reps", "8-10")
	cli.run("exercise", "rm", "2024-06-03", "morning", "2")

	ex = cli.session("2024-06-03", "morning").Exercises()
	require.Len(t, ex, 2)
	assert.Equal(t, "Split Squat", ex[0].Name)
	assert.Equal(t, "8-10", ex[0].Reps)
	assert.Equal(t, "Back Squat", ex[1].Name)
	assert.Equal(t, "C", ex[1].Group)

	cli.inspect(func(p *planner.Planner) {
		assert.Equal(t, []string{"Back Squat", "Nordic Curl", "Split Squat"}, p.ExerciseNames(""))
	})

	_, err := cli.runWithInput("", "exercise", "set", "2024-06-03", "morning", "1", "rpe", "12")
	assert.Error(t, err)
	_, err = cli.runWithInput("", "exercise", "group", "2024-06-03", "morning", "1", "AA")
	assert.Error(t, err)
}

func TestExerciseRejectsNonGym(t *testing.T) {
	cli := setupTestCLI(t)
	cli.run("session", "set", "2024-06-04", "evening", "--sport", "Running")

	_, err := cli.runWithInput("", "exercise", "add", "2024-06-04", "evening", "Squat")
	assert.ErrorIs(t, err, errNotGym)
}

func TestCopyPasteSwapClear(t *testing.T) {
	cli := setupTestCLI(t)
	cli.run("session", "set", "2024-06-03", "morning", "--sport", "Gym", "--sub-type", "Push")
	cli.run("exercise", "add", "2024-06-03", "morning", "Bench Press")

	_, err := cli.runWithInput("", "session", "paste", "2024-06-10", "morning")
	assert.Error(t, err, "empty clipboard")

	cli.run("session", "copy", "2024-06-03", "morning")
	cli.run("session", "paste", "2024-06-10", "morning")

	src := cli.session("2024-06-03", "morning")
	dst := cli.session("2024-06-10", "morning")
	assert.Equal(t, src.SubType, dst.SubType)
	assert.NotEqual(t, src.ID, dst.ID)
	require.Len(t, dst.Exercises(), 1)
	assert.Equal(t, "Bench Press", dst.Exercises()[0].Name)

	cli.run("session", "swap", "2024-06-10", "morning", "2024-06-10", "evening")
	assert.True(t, cli.session("2024-06-10", "morning").IsEmpty())
	assert.Equal(t, "Push", cli.session("2024-06-10", "evening").SubType)

	cli.run("session", "clear", "2024-06-10", "evening")
	cleared := cli.session("2024-06-10", "evening")
	assert.True(t, cleared.IsEmpty())
}

func TestDayCommands(t *testing.T) {
	cli := setupTestCLI(t)

	out := cli.run("day", "status", "2024-06-04", "completed")
	assert.Contains(t, out, "2024-06-04 is completed")
	out = cli.run("day", "status", "2024-06-04")
	assert.Contains(t, out, "is missed")

	cli.run("day", "cns", "2024-06-04", "high")
	cli.run("day", "note", "2024-06-04", "slept", "badly")

	cli.inspect(func(p *planner.Planner) {
		d, err := p.Day("2024-06-04")
		require.NoError(t, err)
		assert.Equal(t, models.StatusMissed, d.Status)
		assert.Equal(t, models.CNSHigh, d.CNSFatigue)
		assert.Equal(t, "slept badly", d.DailyNotes)
	})

	out = cli.run("day", "cns", "2024-06-04", "high", "--toggle")
	assert.Contains(t, out, "Cleared CNS")

	out = cli.run("day", "show", "2024-06-04")
	assert.Contains(t, out, "Tuesday")
	assert.Contains(t, out, "slept badly")
	assert.NotContains(t, out, "CNS fatigue")

	_, err := cli.runWithInput("", "day", "status", "2024-06-04", "skipped")
	assert.Error(t, err)
}

func TestPlanAndWeekCommands(t *testing.T) {
	cli := setupTestCLI(t)
	cli.run("session", "set", "2024-06-04", "evening", "--sport", "Running", "--sub-type", "Easy")
	cli.run("step", "add", "2024-06-04", "evening", "--duration", "10", "--intensity", "5:00")

	out := cli.run("week", "phase", "2024-06-06", "Base")
	assert.Contains(t, out, "Week of 2024-06-03: Base")
	out = cli.run("week", "phase", "2024-06-03")
	assert.Contains(t, out, "Base")

	out = cli.run("plan", "--from", "2024-06-05", "--weeks", "2")
	assert.Contains(t, out, "Week 23  2024-06-03  Base")
	assert.Contains(t, out, "Week 24  2024-06-10")
	assert.Contains(t, out, "Easy run (10.0 km)")
	assert.Contains(t, out, "Running 1x 10.0 km / 50m")
	assert.Equal(t, 16, strings.Count(out, "2024-06-"), "two titles and fourteen day lines")

	out = cli.run("week", "phase", "2024-06-03", "--clear")
	assert.Contains(t, out, "Cleared phase")
	out = cli.run("week", "show", "2024-06-03")
	assert.NotContains(t, out, "Base")
}

func TestMonthCommand(t *testing.T) {
	cli := setupTestCLI(t)
	cli.run("session", "set", "2024-06-04", "evening", "--sport", "Running", "--sub-type", "Tempo run")
	cli.run("session", "set", "2024-06-05", "morning", "--sport", "Gym")

	out := cli.run("month", "2024-06")
	assert.Contains(t, out, "June 2024")
	assert.Contains(t, out, "Running 1x")
	assert.Contains(t, out, "Tempo run")
	assert.Contains(t, out, "Gym 1x")
	assert.Contains(t, out, "Other", "empty gym sub-type counts as Other")

	out = cli.run("month", "2024-07")
	assert.Contains(t, out, "No sessions planned.")

	_, err := cli.runWithInput("", "month", "June")
	assert.Error(t, err)
}

func TestExercisesAndProfile(t *testing.T) {
	cli := setupTestCLI(t)

	cli.run("exercises", "add", "Romanian", "Deadlift")
	out := cli.run("exercises", "add", "romanian deadlift")
	assert.Contains(t, out, "already known")
	out = cli.run("exercises", "list", "dead")
	assert.Contains(t, out, "Romanian Deadlift")
	cli.run("exercises", "rm", "Romanian Deadlift")
	out = cli.run("exercises", "list")
	assert.Contains(t, out, "No exercises found.")

	cli.run("profile", "zone", "running", "lt2", "--pace", "4:10", "--hr", "172")
	cli.run("profile", "pr", "squat", "140")
	cli.run("profile", "pr", "Front Squat", "110")
	cli.run("profile", "pr", "rm", "Pull Up")

	cli.inspect(func(p *planner.Planner) {
		fp := p.Profile()
		assert.Equal(t, models.Zone{PaceOrPower: "4:10", HR: "172"}, fp.Running.LT2)
		names := map[string]string{}
		for _, pr := range fp.Gym {
			names[pr.Name] = pr.Weight
		}
		assert.Equal(t, "140", names["Squat"], "PRs match names case-insensitively")
		assert.Equal(t, "110", names["Front Squat"])
		assert.NotContains(t, names, "Pull Up")
	})

	out = cli.run("profile", "show")
	assert.Contains(t, out, "LT2  pace 4:10  hr 172")

	_, err := cli.runWithInput("", "profile", "zone", "swimming", "lt1", "--pace", "1:40")
	assert.Error(t, err)
	_, err = cli.runWithInput("", "profile", "zone", "running", "lt1")
	assert.Error(t, err)
}

func TestBackupAndRestore(t *testing.T) {
	cli := setupTestCLI(t)
	cli.run("session", "set", "2024-06-04", "evening", "--sport", "Running", "--sub-type", "Tempo run")
	cli.run("week", "phase", "2024-06-04", "Base")

	file := filepath.Join(t.TempDir(), "plan.json")
	out := cli.run("backup", "-o", file)
	assert.Contains(t, out, "Backed up")
	_, err := os.Stat(file)
	require.NoError(t, err)

	cli.run("session", "clear", "2024-06-04", "evening")
	cli.run("week", "phase", "2024-06-04", "--clear")

	out, err = cli.runWithInput("n\n", "restore", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Restore canceled.")
	assert.True(t, cli.session("2024-06-04", "evening").IsEmpty())

	out, err = cli.runWithInput("y\n", "restore", file)
	require.NoError(t, err)
	assert.Contains(t, out, "with sessions")
	assert.Contains(t, out, "Restored")
	assert.Equal(t, "Tempo run", cli.session("2024-06-04", "evening").SubType)

	cli.run("session", "clear", "2024-06-04", "evening")
	cli.run("restore", file, "--yes")
	cli.inspect(func(p *planner.Planner) {
		phase, err := p.Phase("2024-06-05")
		require.NoError(t, err)
		assert.Equal(t, "Base", phase)
	})
}

func TestRestoreInvalidFile(t *testing.T) {
	cli := setupTestCLI(t)
	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"version":3}`), 0600))

	_, err := cli.runWithInput("y\n", "restore", file)
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	cli := setupTestCLI(t)
	cli.run("session", "set", "2024-06-04", "evening", "--sport", "Running", "--sub-type", "Tempo run")

	out := cli.run("export", "markdown", "--from", "2024-06-04", "--weeks", "1")
	assert.Contains(t, out, "# Training Plan")
	assert.Contains(t, out, "| Tuesday | 4 Jun |")

	file := filepath.Join(t.TempDir(), "plan.yaml")
	cli.run("export", "yaml", "--from", "2024-06-04", "-n", "1", "-o", file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sub_type: Tempo run")

	out = cli.run("export", "json")
	assert.Contains(t, out, `"workoutDB"`)

	_, err = cli.runWithInput("", "export", "csv")
	assert.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	cli := setupTestCLI(t)
	cli.run("session", "set", "2024-06-04", "evening", "--sport", "Cycling")

	dest := t.TempDir()
	out := cli.run("migrate", "--to", "badger", "--to-dir", dest)
	assert.Contains(t, out, "from sqlite to badger")

	_, err := cli.runWithInput("", "migrate", "--to", "badger", "--to-dir", dest)
	assert.Error(t, err, "non-empty destination needs --force")
	cli.run("migrate", "--to", "badger", "--to-dir", dest, "--force")

	_, err = cli.runWithInput("", "migrate", "--to", "sqlite")
	assert.Error(t, err, "same backend and dir")

	dst, err := config.OpenBackend("badger", dest)
	require.NoError(t, err)
	defer dst.Close()
	p, err := planner.Open(dst, log.New(io.Discard))
	require.NoError(t, err)
	ref, _ := planner.ParseSlotRef("2024-06-04", "evening")
	s, err := p.Session(ref)
	require.NoError(t, err)
	assert.Equal(t, models.SportCycling, s.Sport)
}

func TestMigrateSaveConfig(t *testing.T) {
	cli := setupTestCLI(t)

	dest := t.TempDir()
	cli.run("migrate", "--to", "memory", "--to-dir", dest, "--save-config")

	cfg, err := config.LoadFile(config.GetConfigPath())
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, dest, cfg.DataDir)
}

func TestSkipsPlanner(t *testing.T) {
	for _, cmd := range []*cobra.Command{installSkillCmd, syncLinkCmd, syncUnlinkCmd, syncRepairCmd, syncResetCmd, syncWipeCmd} {
		assert.True(t, skipsPlanner(cmd), cmd.Name())
	}
	for _, cmd := range []*cobra.Command{planCmd, syncStatusCmd, syncNowCmd, sessionSetCmd} {
		assert.False(t, skipsPlanner(cmd), cmd.Name())
	}
}

func TestSyncNeedsCharmBackend(t *testing.T) {
	cli := setupTestCLI(t)

	_, err := cli.runWithInput("", "sync", "now")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "charm backend")
}

func TestSyncWipeCanceled(t *testing.T) {
	cli := setupTestCLI(t)

	out, err := cli.runWithInput("no\n", "sync", "wipe")
	require.NoError(t, err)
	assert.Contains(t, out, "Canceled.")
}
