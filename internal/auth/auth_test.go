package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

var testUsers = []model.User{
	{ID: "a1", Name: "Admin", Email: "admin@hanvit.local", Role: model.RoleAdmin},
	{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: model.RoleStudent, Password: "secret1"},
	{ID: "u2", Name: "Bob", Email: "bob@example.com", Role: model.RoleStudent, Password: "secret2"},
}

func TestStudentLogin(t *testing.T) {
	t.Run("exact match succeeds", func(t *testing.T) {
		u, err := StudentLogin(testUsers, "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := StudentLogin(testUsers, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown email fails", func(t *testing.T) {
		_, err := StudentLogin(testUsers, "ghost@example.com", "secret1")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("admin cannot log in via student path", func(t *testing.T) {
		_, err := StudentLogin(testUsers, "admin@hanvit.local", "")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestAdminLogin(t *testing.T) {
	t.Run("correct secret resolves the admin record", func(t *testing.T) {
		u, err := AdminLogin(testUsers, "hunter2", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "a1", u.ID)
		assert.Equal(t, model.RoleAdmin, u.Role)
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		_, err := AdminLogin(testUsers, "guess", "hunter2")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unconfigured secret always fails", func(t *testing.T) {
		_, err := AdminLogin(testUsers, "", "")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("no admin record fails even with correct secret", func(t *testing.T) {
		_, err := AdminLogin(testUsers[1:], "hunter2", "hunter2")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestCanViewQnA(t *testing.T) {
	qna := &model.CourseQnA{ID: "q1", CourseID: "c1", StudentID: "u1"}

	admin := &model.User{ID: "a1", Role: model.RoleAdmin}
	author := &model.User{ID: "u1", Role: model.RoleStudent}
	other := &model.User{ID: "u2", Role: model.RoleStudent}

	assert.True(t, CanViewQnA(admin, qna))
	assert.True(t, CanViewQnA(author, qna))
	assert.False(t, CanViewQnA(other, qna))
	assert.False(t, CanViewQnA(nil, qna))
}
