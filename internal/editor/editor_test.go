// ABOUTME: Tests for the session editor modes and list operations.
// ABOUTME: Covers superset insertion order, regrouping, and nested step edits.
package editor

import (
	"testing"

	"github.com/harperreed/sportplan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gym(ex ...models.Exercise) models.Session {
	s := models.NewSession("t1")
	s.SetSport(models.SportGym)
	s.SetExercises(ex)
	return s
}

func running(st ...models.Component) models.Session {
	s := models.NewSession("t1")
	s.SetSport(models.SportRunning)
	s.SetStructure(st)
	return s
}

func ids(ex []models.Exercise) []string {
	out := make([]string, len(ex))
	for i, e := range ex {
		out[i] = e.ID
	}
	return out
}

func groupsABA() models.Session {
	return gym(
		models.Exercise{ID: "1", Group: "A"},
		models.Exercise{ID: "2", Group: "B"},
		models.Exercise{ID: "3", Group: "A"},
	)
}

func TestOpenMode(t *testing.T) {
	assert.Equal(t, ModeEdit, Open(models.NewSession("t1")).Mode())
	assert.Equal(t, ModeEdit, Open(gym()).Mode())
	assert.Equal(t, ModeSummary, Open(groupsABA()).Mode())
	assert.Equal(t, ModeSummary, Open(running(models.NewStep())).Mode())
}

func TestOpenInitializesPayload(t *testing.T) {
	s := models.Session{ID: "t1", Sport: models.SportCycling}
	e := Open(s)
	assert.NotNil(t, e.Session().Structure())

	g := models.Session{ID: "t1", Sport: models.SportGym}
	assert.NotNil(t, Open(g).Session().Exercises())
}

func TestOpenCopiesSession(t *testing.T) {
	orig := groupsABA()
	e := Open(orig)
	e.RemoveExercise("1")
	assert.Len(t, orig.Exercises(), 3)
}

func TestSetSportForcesEdit(t *testing.T) {
	e := Open(groupsABA())
	e.SetSubType("Push")
	e.SetSport(models.SportRunning)

	assert.Equal(t, ModeEdit, e.Mode())
	s := e.Session()
	assert.Empty(t, s.SubType)
	assert.Nil(t, s.Exercises())
	assert.NotNil(t, s.Structure())
}

func TestAddExerciseWithGroupInsertsAfterLastOfGroup(t *testing.T) {
	e := Open(groupsABA())

	id, err := e.AddExercise("B")
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", id, "3"}, ids(e.Session().Exercises()))
}

func TestAddExerciseWithNewGroupAppends(t *testing.T) {
	e := Open(groupsABA())
	id, _ := e.AddExercise("C")
	assert.Equal(t, []string{"1", "2", "3", id}, ids(e.Session().Exercises()))
}

func TestAddExerciseWithoutGroupSorts(t *testing.T) {
	e := Open(groupsABA())

	id, err := e.AddExercise("")
	require.NoError(t, err)

	got := e.Session().Exercises()
	assert.Equal(t, []string{"1", "3", id, "2"}, ids(got))
	added := got[2]
	assert.Equal(t, "A", added.Group)
	assert.Equal(t, 3, added.Sets)
	assert.Equal(t, "10", added.Reps)
	assert.Equal(t, models.RPEUnset, added.RPE)
}

func TestAddExerciseRejectsBadGroup(t *testing.T) {
	e := Open(groupsABA())
	_, err := e.AddExercise("Z")
	assert.Error(t, err)
	assert.Len(t, e.Session().Exercises(), 3)
}

func TestAddExerciseIgnoredOffGym(t *testing.T) {
	e := Open(running())
	id, err := e.AddExercise("A")
	assert.NoError(t, err)
	assert.Empty(t, id)
	assert.Nil(t, e.Session().Exercises())
}

func TestSortTreatsEmptyGroupAsA(t *testing.T) {
	e := Open(gym(
		models.Exercise{ID: "1", Group: "B"},
		models.Exercise{ID: "2", Group: ""},
	))
	require.NoError(t, e.Regroup("1", "C"))
	assert.Equal(t, []string{"2", "1"}, ids(e.Session().Exercises()))
}

func TestRegroupSortsStably(t *testing.T) {
	e := Open(groupsABA())

	require.NoError(t, e.Regroup("1", "B"))
	assert.Equal(t, []string{"3", "1", "2"}, ids(e.Session().Exercises()))

	require.NoError(t, e.Regroup("missing", "A"))
	assert.Error(t, e.Regroup("3", "a"))
}

func TestMoveExerciseDoesNotSort(t *testing.T) {
	e := Open(groupsABA())

	e.MoveExercise(0, Down)
	assert.Equal(t, []string{"2", "1", "3"}, ids(e.Session().Exercises()))

	e.MoveExercise(0, Up)
	e.MoveExercise(2, Down)
	e.MoveExercise(9, Up)
	assert.Equal(t, []string{"2", "1", "3"}, ids(e.Session().Exercises()))
}

func TestRemoveExercise(t *testing.T) {
	e := Open(groupsABA())
	e.RemoveExercise("2")
	e.RemoveExercise("nope")
	assert.Equal(t, []string{"1", "3"}, ids(e.Session().Exercises()))
}

func TestUpdateExercise(t *testing.T) {
	e := Open(groupsABA())

	require.NoError(t, e.UpdateExercise("1", "name", "Squat"))
	require.NoError(t, e.UpdateExercise("1", "sets", "5"))
	require.NoError(t, e.UpdateExercise("1", "reps", "3-5"))
	require.NoError(t, e.UpdateExercise("1", "rpe", "8"))
	require.NoError(t, e.UpdateExercise("1", "weight", "120"))
	require.NoError(t, e.UpdateExercise("1", "group", "C"))

	got := e.Session().Exercises()[0]
	assert.Equal(t, models.Exercise{ID: "1", Name: "Squat", Weight: "120", Sets: 5, Reps: "3-5", RPE: "8", Group: "C"}, got)

	assert.Error(t, e.UpdateExercise("1", "sets", "lots"))
	assert.Error(t, e.UpdateExercise("1", "rpe", "11"))
	assert.Error(t, e.UpdateExercise("1", "tempo", "3010"))
	assert.NoError(t, e.UpdateExercise("missing", "name", "x"))
}

func TestClearKeepsIDAndEdits(t *testing.T) {
	e := Open(groupsABA())
	rpe := 7
	e.SetRPE(&rpe)
	e.SetNotes("heavy")
	e.SetTime("18:00")
	e.SetPeriodization("Strength")

	e.Clear()

	assert.Equal(t, ModeEdit, e.Mode())
	assert.Equal(t, models.Session{ID: "t1"}, e.Session())
}

func TestPasteEntersSummary(t *testing.T) {
	e := Open(models.NewSession("target"))
	clip := groupsABA()
	clip.Notes = "copied"

	e.Paste(clip)

	s := e.Session()
	assert.Equal(t, ModeSummary, e.Mode())
	assert.Equal(t, "target", s.ID)
	assert.Equal(t, "copied", s.Notes)
	assert.Len(t, s.Exercises(), 3)
	assert.NotEqual(t, "1", s.Exercises()[0].ID)
}

func TestSaveAndCancel(t *testing.T) {
	e := Open(groupsABA())
	e.RemoveExercise("1")

	s, err := e.Save()
	require.NoError(t, err)
	assert.Len(t, s.Exercises(), 2)

	_, err = e.Save()
	assert.ErrorIs(t, err, ErrClosed)

	c := Open(groupsABA())
	c.Cancel()
	_, err = c.Save()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("UP")
	require.NoError(t, err)
	assert.Equal(t, Up, d)
	_, err = ParseDirection("left")
	assert.Error(t, err)
}
