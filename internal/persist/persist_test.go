package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educreatorschool-design/hanvitlms/internal/store"
	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

func testState() *model.PersistedState {
	state := &model.PersistedState{
		CurrentUser: &model.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: model.RoleAdmin},
		Snapshot: model.Snapshot{
			Users:   []model.User{{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: model.RoleAdmin}},
			Courses: []model.Course{{ID: "c1", Title: "Networks"}},
		},
	}
	state.Normalize()
	return state
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := New(t.TempDir())

	want := testState()
	require.NoError(t, fs.Save(want))

	got, err := fs.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.CurrentUser, got.CurrentUser)
	assert.Equal(t, want.Users, got.Users)
	assert.Equal(t, want.Courses, got.Courses)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	fs := New(t.TempDir())

	got, err := fs.Load()
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	fs := New(dir)
	require.NoError(t, os.WriteFile(fs.Path(), []byte("{not json"), 0o644))

	_, err := fs.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse state file")
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	fs := New(dir)

	require.NoError(t, fs.Save(testState()))

	_, err := os.Stat(fs.Path())
	assert.NoError(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs := New(dir)
	require.NoError(t, fs.Save(testState()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, StateFileName, entries[0].Name())
}

func TestAttachPersistsEveryMutation(t *testing.T) {
	fs := New(t.TempDir())
	st := store.New()
	fs.Attach(st)

	course := model.Course{
		ID:         "c1",
		Title:      "Databases",
		TotalWeeks: 4,
		Type:       model.CourseTypeVideo,
		EvaluationCriteria: []model.EvaluationCriterion{
			{Name: "Final Exam", Percentage: 100},
		},
	}
	require.NoError(t, st.AddCourse(course))

	got, err := fs.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Courses, 1)
	assert.Equal(t, "Databases", got.Courses[0].Title)

	// A second mutation overwrites the same slot.
	st.Login(model.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: model.RoleAdmin})

	got, err = fs.Load()
	require.NoError(t, err)
	require.NotNil(t, got.CurrentUser)
	assert.Equal(t, "u1", got.CurrentUser.ID)
}
