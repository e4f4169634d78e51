package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshot(t *testing.T) {
	t.Run("rejects non-JSON input", func(t *testing.T) {
		_, err := ParseSnapshot([]byte("not json"))
		require.Error(t, err)
		var bad *ErrBadSnapshot
		assert.ErrorAs(t, err, &bad)
	})

	t.Run("rejects missing users", func(t *testing.T) {
		_, err := ParseSnapshot([]byte(`{"courses":[]}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "users")
	})

	t.Run("rejects missing courses", func(t *testing.T) {
		_, err := ParseSnapshot([]byte(`{"users":[]}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "courses")
	})

	t.Run("rejects unrelated object", func(t *testing.T) {
		_, err := ParseSnapshot([]byte(`{"foo":1}`))
		assert.Error(t, err)
	})

	t.Run("accepts minimal snapshot, defaults optional collections", func(t *testing.T) {
		snap, err := ParseSnapshot([]byte(`{"users":[],"courses":[]}`))
		require.NoError(t, err)
		assert.NotNil(t, snap.Submissions)
		assert.NotNil(t, snap.SiteNotices)
		assert.NotNil(t, snap.CourseNotices)
		assert.NotNil(t, snap.CourseQnAs)
		assert.NotNil(t, snap.Messages)
		assert.Empty(t, snap.Messages)
	})

	t.Run("preserves entity content", func(t *testing.T) {
		in := &Snapshot{
			Users:   []User{{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: RoleStudent}},
			Courses: []Course{{ID: "c1", Title: "Go", TotalWeeks: 4, Type: CourseTypeText}},
			Messages: []Message{
				{ID: "m1", SenderID: "u1", ReceiverID: "u2", Content: "hi", CreatedAt: "2026-01-01T00:00:00Z"},
			},
		}
		in.Normalize()

		data, err := in.Encode()
		require.NoError(t, err)

		out, err := ParseSnapshot(data)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestSnapshotClone(t *testing.T) {
	snap := &Snapshot{
		Users:   []User{{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: RoleStudent}},
		Courses: []Course{{ID: "c1", Title: "Go", StudentIDs: []string{"u1"}}},
	}
	snap.Normalize()

	clone, err := snap.Clone()
	require.NoError(t, err)
	require.Equal(t, snap, clone)

	// The clone must not alias the original's slices.
	clone.Courses[0].StudentIDs[0] = "someone-else"
	assert.Equal(t, "u1", snap.Courses[0].StudentIDs[0])
}

func TestPersistedStateShape(t *testing.T) {
	// The persisted state flattens to {currentUser, users, courses, ...};
	// the snapshot collections must not nest under a separate key.
	state := PersistedState{
		CurrentUser: &User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: RoleAdmin},
	}
	state.Normalize()

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "currentUser")
	assert.Contains(t, raw, "users")
	assert.Contains(t, raw, "courses")
	assert.NotContains(t, raw, "snapshot")
}
