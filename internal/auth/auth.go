// Package auth implements the trivial credential checks and the single
// authorization predicate shared by the state layer and any presentation
// layer. This is deliberately not a security boundary: passwords are
// compared in plain text and the admin logs in with a shared secret.
package auth

import (
	"fmt"

	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

// ErrBadCredentials is returned on any failed login attempt. One message
// for every failure mode so the caller cannot probe which part was wrong.
var ErrBadCredentials = fmt.Errorf("invalid credentials")

// StudentLogin resolves a student account by exact (email, password)
// match. Only STUDENT accounts are considered.
func StudentLogin(users []model.User, email, password string) (*model.User, error) {
	for i := range users {
		u := &users[i]
		if u.Role == model.RoleStudent && u.Email == email && u.Password == password {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrBadCredentials
}

// AdminLogin compares the supplied secret against the configured admin
// secret and resolves to the single ADMIN user record.
func AdminLogin(users []model.User, secret, adminSecret string) (*model.User, error) {
	if adminSecret == "" || secret != adminSecret {
		return nil, ErrBadCredentials
	}
	for i := range users {
		if users[i].Role == model.RoleAdmin {
			out := users[i]
			return &out, nil
		}
	}
	return nil, ErrBadCredentials
}

// CanViewQnA reports whether viewer may see the question. Admins see
// every question; a student sees only questions they authored. This is
// the one place visibility is decided.
func CanViewQnA(viewer *model.User, qna *model.CourseQnA) bool {
	if viewer == nil {
		return false
	}
	if viewer.Role == model.RoleAdmin {
		return true
	}
	return qna.StudentID == viewer.ID
}
