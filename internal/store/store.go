// Package store implements the process-wide application state container.
// A single Store instance owns every domain collection plus the current
// session, and its fixed set of mutation methods is the only legal path
// for state change. Each mutation runs atomically under an internal mutex
// and, on success, notifies registered change subscribers (persistence and
// the sync bridge register themselves as subscribers; the store knows
// nothing about either).
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

// Store is the single shared mutable resource of the application. All
// methods are safe for concurrent use; no two mutations interleave.
type Store struct {
	mu    sync.Mutex
	state model.PersistedState

	subMu       sync.Mutex
	subscribers []func()
}

// New creates an empty Store. Load a persisted state or apply a remote
// snapshot to seed it.
func New() *Store {
	s := &Store{}
	s.state.Normalize()
	return s
}

// Subscribe registers fn to be called after every successful mutation.
// Callbacks run outside the state lock, in registration order, on the
// mutating goroutine; they may read the store but should return quickly.
func (s *Store) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Login sets the current session user.
func (s *Store) Login(user model.User) {
	s.mu.Lock()
	u := user
	s.state.CurrentUser = &u
	s.mu.Unlock()
	s.notify()
}

// Logout clears the current session.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state.CurrentUser = nil
	s.mu.Unlock()
	s.notify()
}

// CurrentUser returns the session user, or nil when logged out.
func (s *Store) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CurrentUser == nil {
		return nil
	}
	u := *s.state.CurrentUser
	return &u
}

// RegisterUser appends a user to the users collection. Email uniqueness
// among students is the caller's responsibility (checked at registration
// time, not revalidated here or on import).
func (s *Store) RegisterUser(user model.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	s.mu.Lock()
	s.state.Users = append(s.state.Users, user)
	s.mu.Unlock()
	s.notify()
	return nil
}

// EmailTaken reports whether any STUDENT user already uses the email.
func (s *Store) EmailTaken(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Users {
		if s.state.Users[i].Role == model.RoleStudent && s.state.Users[i].Email == email {
			return true
		}
	}
	return false
}

// AddCourse appends a new course. The course must pass validation,
// including the evaluation-criteria percentage gate.
func (s *Store) AddCourse(course model.Course) error {
	if err := course.Validate(); err != nil {
		return fmt.Errorf("invalid course: %w", err)
	}

	s.mu.Lock()
	s.state.Courses = append(s.state.Courses, course.Clone())
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpdateCourse replaces the course with the same id. No-op if the id is
// not found. The replacement must pass the same validation as AddCourse.
func (s *Store) UpdateCourse(course model.Course) error {
	if err := course.Validate(); err != nil {
		return fmt.Errorf("invalid course: %w", err)
	}

	s.mu.Lock()
	for i := range s.state.Courses {
		if s.state.Courses[i].ID == course.ID {
			s.state.Courses[i] = course.Clone()
			break
		}
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// EnrollStudent adds the student to the course's pending roster, only if
// the student is in neither roster already. Idempotent.
func (s *Store) EnrollStudent(courseID, studentID string) {
	s.mu.Lock()
	for i := range s.state.Courses {
		c := &s.state.Courses[i]
		if c.ID != courseID {
			continue
		}
		if contains(c.StudentIDs, studentID) || contains(c.PendingStudentIDs, studentID) {
			break
		}
		c.PendingStudentIDs = append(c.PendingStudentIDs, studentID)
		break
	}
	s.mu.Unlock()
	s.notify()
}

// ApproveStudent moves the student from the pending roster to the
// approved roster. No-op if the student is not pending.
func (s *Store) ApproveStudent(courseID, studentID string) {
	s.mu.Lock()
	for i := range s.state.Courses {
		c := &s.state.Courses[i]
		if c.ID != courseID {
			continue
		}
		if !contains(c.PendingStudentIDs, studentID) {
			break
		}
		c.PendingStudentIDs = remove(c.PendingStudentIDs, studentID)
		c.StudentIDs = append(c.StudentIDs, studentID)
		break
	}
	s.mu.Unlock()
	s.notify()
}

// RemoveStudent deletes the user record, strips the student from every
// course roster and drops every submission they authored. The cascade is
// a single atomic step: no observer can see a partial removal.
func (s *Store) RemoveStudent(studentID string) {
	s.mu.Lock()
	users := s.state.Users[:0]
	for _, u := range s.state.Users {
		if u.ID != studentID {
			users = append(users, u)
		}
	}
	s.state.Users = users

	for i := range s.state.Courses {
		c := &s.state.Courses[i]
		c.StudentIDs = remove(c.StudentIDs, studentID)
		c.PendingStudentIDs = remove(c.PendingStudentIDs, studentID)
	}

	subs := s.state.Submissions[:0]
	for _, sub := range s.state.Submissions {
		if sub.StudentID != studentID {
			subs = append(subs, sub)
		}
	}
	s.state.Submissions = subs
	s.mu.Unlock()
	s.notify()
}

// AddSubmission inserts a submission, first removing any existing
// submission with the same (courseId, week, studentId, type) key. This
// enforces the at-most-one invariant: resubmission replaces, never
// duplicates.
func (s *Store) AddSubmission(sub model.Submission) {
	s.mu.Lock()
	key := sub.Key()
	kept := s.state.Submissions[:0]
	for _, existing := range s.state.Submissions {
		if existing.Key() != key {
			kept = append(kept, existing)
		}
	}
	s.state.Submissions = append(kept, sub.Clone())
	s.mu.Unlock()
	s.notify()
}

// GradeSubmission sets score and feedback on the submission with the
// given id. No-op if the id no longer exists (e.g. graded after the
// student was removed).
func (s *Store) GradeSubmission(id string, score int, feedback string) {
	s.mu.Lock()
	for i := range s.state.Submissions {
		if s.state.Submissions[i].ID == id {
			sc := score
			s.state.Submissions[i].Score = &sc
			s.state.Submissions[i].Feedback = feedback
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// AddSiteNotice prepends a site-wide notice (newest first).
func (s *Store) AddSiteNotice(n model.SiteNotice) {
	s.mu.Lock()
	s.state.SiteNotices = append([]model.SiteNotice{n}, s.state.SiteNotices...)
	s.mu.Unlock()
	s.notify()
}

// DeleteSiteNotice removes the notice with the given id.
func (s *Store) DeleteSiteNotice(id string) {
	s.mu.Lock()
	kept := s.state.SiteNotices[:0]
	for _, n := range s.state.SiteNotices {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.state.SiteNotices = kept
	s.mu.Unlock()
	s.notify()
}

// AddCourseNotice prepends a course-scoped notice (newest first).
func (s *Store) AddCourseNotice(n model.CourseNotice) {
	s.mu.Lock()
	s.state.CourseNotices = append([]model.CourseNotice{n}, s.state.CourseNotices...)
	s.mu.Unlock()
	s.notify()
}

// DeleteCourseNotice removes the course notice with the given id.
func (s *Store) DeleteCourseNotice(id string) {
	s.mu.Lock()
	kept := s.state.CourseNotices[:0]
	for _, n := range s.state.CourseNotices {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.state.CourseNotices = kept
	s.mu.Unlock()
	s.notify()
}

// AddCourseQnA prepends a student question (newest first).
func (s *Store) AddCourseQnA(q model.CourseQnA) {
	s.mu.Lock()
	s.state.CourseQnAs = append([]model.CourseQnA{q}, s.state.CourseQnAs...)
	s.mu.Unlock()
	s.notify()
}

// AnswerCourseQnA attaches the admin's answer to the question with the
// given id and stamps the answer time. No-op if the id is not found.
func (s *Store) AnswerCourseQnA(id, answer string) {
	s.mu.Lock()
	for i := range s.state.CourseQnAs {
		if s.state.CourseQnAs[i].ID == id {
			s.state.CourseQnAs[i].Answer = answer
			s.state.CourseQnAs[i].AnsweredAt = time.Now().Format(time.RFC3339)
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// SendMessage appends a direct message.
func (s *Store) SendMessage(m model.Message) {
	s.mu.Lock()
	s.state.Messages = append(s.state.Messages, m)
	s.mu.Unlock()
	s.notify()
}

// MarkMessagesAsRead flips read to true on every currently-unread message
// sent from senderID to receiverID. Directional: messages flowing the
// other way are untouched.
func (s *Store) MarkMessagesAsRead(senderID, receiverID string) {
	s.mu.Lock()
	for i := range s.state.Messages {
		m := &s.state.Messages[i]
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.Read {
			m.Read = true
		}
	}
	s.mu.Unlock()
	s.notify()
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
