package store

import (
	"sort"

	"github.com/educreatorschool-design/hanvitlms/internal/auth"
	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

// Read paths. All accessors return copies; callers can never mutate the
// store's collections through a returned slice. Entities carrying nested
// slices or pointers (courses, submissions) are deep-copied, not just
// shallow struct copies.

// Users returns all user records.
func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, len(s.state.Users))
	copy(out, s.state.Users)
	return out
}

// UserByEmail returns the first user with the given email, or nil.
func (s *Store) UserByEmail(email string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Users {
		if s.state.Users[i].Email == email {
			u := s.state.Users[i]
			return &u
		}
	}
	return nil
}

// Courses returns all courses.
func (s *Store) Courses() []model.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Course, len(s.state.Courses))
	for i := range s.state.Courses {
		out[i] = s.state.Courses[i].Clone()
	}
	return out
}

// CourseByID returns the course with the given id, or nil.
func (s *Store) CourseByID(id string) *model.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Courses {
		if s.state.Courses[i].ID == id {
			c := s.state.Courses[i].Clone()
			return &c
		}
	}
	return nil
}

// Submissions returns all submissions.
func (s *Store) Submissions() []model.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Submission, len(s.state.Submissions))
	for i := range s.state.Submissions {
		out[i] = s.state.Submissions[i].Clone()
	}
	return out
}

// SubmissionByKey returns the submission occupying the given slot, or nil.
func (s *Store) SubmissionByKey(key model.SubmissionKey) *model.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Submissions {
		if s.state.Submissions[i].Key() == key {
			sub := s.state.Submissions[i].Clone()
			return &sub
		}
	}
	return nil
}

// SiteNotices returns all site-wide notices, newest first.
func (s *Store) SiteNotices() []model.SiteNotice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SiteNotice, len(s.state.SiteNotices))
	copy(out, s.state.SiteNotices)
	return out
}

// CourseNotices returns the notices for one course, newest first.
func (s *Store) CourseNotices(courseID string) []model.CourseNotice {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.CourseNotice
	for _, n := range s.state.CourseNotices {
		if n.CourseID == courseID {
			out = append(out, n)
		}
	}
	return out
}

// CourseQnAsFor returns the questions on a course that viewer is allowed
// to see: admins see everything, a student sees only their own questions.
// Access control is enforced here, on the read path, not in storage.
func (s *Store) CourseQnAsFor(viewer *model.User, courseID string) []model.CourseQnA {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.CourseQnA
	for _, q := range s.state.CourseQnAs {
		if q.CourseID == courseID && auth.CanViewQnA(viewer, &q) {
			out = append(out, q)
		}
	}
	return out
}

// Conversation returns every message exchanged between the two parties in
// either direction, ordered by creation time ascending.
func (s *Store) Conversation(partyA, partyB string) []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Message
	for _, m := range s.state.Messages {
		if (m.SenderID == partyA && m.ReceiverID == partyB) ||
			(m.SenderID == partyB && m.ReceiverID == partyA) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

// UnreadCount returns how many unread messages are waiting for receiverID
// from senderID.
func (s *Store) UnreadCount(senderID, receiverID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.state.Messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.Read {
			n++
		}
	}
	return n
}
