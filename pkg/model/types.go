// Package model provides type-safe Go definitions for the Hanvit LMS domain.
// Every entity that lives in the shared application state is defined here:
// users, courses with their weekly syllabus, submissions, notices, Q&A and
// direct messages. The package holds no behavior beyond validation; all
// mutation happens through the state store.
//
// JSON field names are camelCase because the same snapshot shape is shared
// with other clients through the remote sync record and export files.
package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validate is the shared struct validator used by entity Validate methods.
var validate = validator.New()

// UserRole defines the access level of a user account.
type UserRole string

const (
	// RoleAdmin is the single administrator account. Seed data contains at
	// most one admin.
	RoleAdmin UserRole = "ADMIN"

	// RoleStudent is a registered student account.
	RoleStudent UserRole = "STUDENT"

	// RoleGuest is an unauthenticated visitor.
	RoleGuest UserRole = "GUEST"
)

// Validate checks if the UserRole is a valid enum value.
func (r UserRole) Validate() error {
	switch r {
	case RoleAdmin, RoleStudent, RoleGuest:
		return nil
	default:
		return fmt.Errorf("unknown user role: %q", r)
	}
}

// User represents an account in the system.
type User struct {
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Role     UserRole `json:"role"`
	Password string   `json:"password,omitempty"` // plain credential check, not a security boundary
}

// Validate checks if the User has valid field values.
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return err
	}
	if err := u.Role.Validate(); err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}
	return nil
}

// CourseType defines the delivery format of a course.
type CourseType string

const (
	CourseTypeVideo   CourseType = "VIDEO"
	CourseTypeText    CourseType = "TEXT"
	CourseTypeAITutor CourseType = "AI_TUTOR"
)

// Validate checks if the CourseType is a valid enum value.
func (t CourseType) Validate() error {
	switch t {
	case CourseTypeVideo, CourseTypeText, CourseTypeAITutor:
		return nil
	default:
		return fmt.Errorf("unknown course type: %q", t)
	}
}

// EvaluationCriterion is one weighted grading component of a course
// (e.g. assignments 30%, discussions 20%, final exam 50%).
type EvaluationCriterion struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// QuestionType defines the answer format of a quiz question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionShortAnswer    QuestionType = "SHORT_ANSWER"
	QuestionEssay          QuestionType = "ESSAY"
)

// Validate checks if the QuestionType is a valid enum value.
func (t QuestionType) Validate() error {
	switch t {
	case QuestionMultipleChoice, QuestionShortAnswer, QuestionEssay:
		return nil
	default:
		return fmt.Errorf("unknown question type: %q", t)
	}
}

// QuizQuestion is a single question inside a weekly module's quiz.
// Options are only meaningful for MULTIPLE_CHOICE questions. CorrectAnswer
// holds the reference answer or key points used for grading.
type QuizQuestion struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
}

// Validate checks if the QuizQuestion has valid field values.
func (q *QuizQuestion) Validate() error {
	if err := q.Type.Validate(); err != nil {
		return err
	}
	if q.Question == "" {
		return fmt.Errorf("question text cannot be empty")
	}
	if q.Type == QuestionMultipleChoice && len(q.Options) < 2 {
		return fmt.Errorf("multiple choice question needs at least 2 options, got %d", len(q.Options))
	}
	return nil
}

// WeeklyModule is one week's unit of course content, activities and
// assessment. The has* flags gate whether the related title/description
// pairs are meaningful.
type WeeklyModule struct {
	Week          int            `json:"week"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	StudyMaterial string         `json:"studyMaterial,omitempty"` // markdown lecture content, usually AI generated
	Quiz          []QuizQuestion `json:"quiz,omitempty"`

	HasAssignment bool `json:"hasAssignment,omitempty"`
	HasDiscussion bool `json:"hasDiscussion,omitempty"`
	HasExam       bool `json:"hasExam,omitempty"`

	AssignmentTitle       string `json:"assignmentTitle,omitempty"`
	AssignmentDescription string `json:"assignmentDescription,omitempty"`
	DiscussionTopic       string `json:"discussionTopic,omitempty"`
	DiscussionDescription string `json:"discussionDescription,omitempty"`
}

// Validate checks if the WeeklyModule has valid field values.
func (m *WeeklyModule) Validate() error {
	if m.Week < 1 {
		return fmt.Errorf("invalid week: must be >= 1, got %d", m.Week)
	}
	if m.Title == "" {
		return fmt.Errorf("week %d: title cannot be empty", m.Week)
	}
	for i := range m.Quiz {
		if err := m.Quiz[i].Validate(); err != nil {
			return fmt.Errorf("week %d quiz question %d: %w", m.Week, i, err)
		}
	}
	return nil
}

// Course represents an authored course with its weekly syllabus and
// enrollment rosters. StudentIDs holds approved students,
// PendingStudentIDs holds requested-but-unapproved enrollments; a given
// student id never appears in both at once.
type Course struct {
	ID                  string                `json:"id" validate:"required"`
	Title               string                `json:"title" validate:"required"`
	Description         string                `json:"description"`
	Major               string                `json:"major"`
	TotalWeeks          int                   `json:"totalWeeks" validate:"min=1"`
	Type                CourseType            `json:"type"`
	EvaluationCriteria  []EvaluationCriterion `json:"evaluationCriteria"`
	Syllabus            []WeeklyModule        `json:"syllabus"`
	StudentIDs          []string              `json:"studentIds"`
	PendingStudentIDs   []string              `json:"pendingStudentIds"`
}

// Validate checks if the Course is in a saveable state. Evaluation
// criteria percentages must sum to exactly 100; syllabus weeks must be
// unique within the course.
func (c *Course) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if err := c.Type.Validate(); err != nil {
		return fmt.Errorf("invalid course type: %w", err)
	}

	sum := 0
	for _, ec := range c.EvaluationCriteria {
		sum += ec.Percentage
	}
	if sum != 100 {
		return fmt.Errorf("evaluation criteria percentages must sum to 100, got %d", sum)
	}

	weeksSeen := make(map[int]bool, len(c.Syllabus))
	for i := range c.Syllabus {
		if err := c.Syllabus[i].Validate(); err != nil {
			return fmt.Errorf("invalid syllabus: %w", err)
		}
		if weeksSeen[c.Syllabus[i].Week] {
			return fmt.Errorf("duplicate syllabus week: %d", c.Syllabus[i].Week)
		}
		weeksSeen[c.Syllabus[i].Week] = true
	}

	return nil
}

// Clone returns a deep copy of the course. The nested syllabus, roster
// and criteria slices never alias the original; nil slices stay nil so
// the JSON shape of a cloned course matches the original exactly.
func (c Course) Clone() Course {
	out := c
	out.EvaluationCriteria = cloneSlice(c.EvaluationCriteria)
	out.StudentIDs = cloneSlice(c.StudentIDs)
	out.PendingStudentIDs = cloneSlice(c.PendingStudentIDs)
	if c.Syllabus != nil {
		out.Syllabus = make([]WeeklyModule, len(c.Syllabus))
		for i := range c.Syllabus {
			out.Syllabus[i] = c.Syllabus[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the weekly module, including its quiz
// questions and their option lists.
func (w WeeklyModule) Clone() WeeklyModule {
	out := w
	if w.Quiz != nil {
		out.Quiz = make([]QuizQuestion, len(w.Quiz))
		for i, q := range w.Quiz {
			out.Quiz[i] = q
			out.Quiz[i].Options = cloneSlice(q.Options)
		}
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// SubmissionType defines which weekly activity a submission belongs to.
type SubmissionType string

const (
	SubmissionAssignment SubmissionType = "ASSIGNMENT"
	SubmissionDiscussion SubmissionType = "DISCUSSION"
	SubmissionExam       SubmissionType = "EXAM"
)

// Validate checks if the SubmissionType is a valid enum value.
func (t SubmissionType) Validate() error {
	switch t {
	case SubmissionAssignment, SubmissionDiscussion, SubmissionExam:
		return nil
	default:
		return fmt.Errorf("unknown submission type: %q", t)
	}
}

// Submission is a student's work for one weekly activity. At most one
// submission exists per (courseId, week, studentId, type); resubmission
// replaces the prior record.
type Submission struct {
	ID          string         `json:"id"`
	CourseID    string         `json:"courseId"`
	Week        int            `json:"week"`
	StudentID   string         `json:"studentId"`
	Type        SubmissionType `json:"type"`
	Content     string         `json:"content"`
	Score       *int           `json:"score,omitempty"`
	Feedback    string         `json:"feedback,omitempty"`
	SubmittedAt string         `json:"submittedAt"` // RFC 3339
}

// Clone returns a copy whose Score pointer does not alias the original.
func (s Submission) Clone() Submission {
	out := s
	if s.Score != nil {
		v := *s.Score
		out.Score = &v
	}
	return out
}

// Key returns the identity tuple that the at-most-one invariant is
// enforced over.
func (s *Submission) Key() SubmissionKey {
	return SubmissionKey{CourseID: s.CourseID, Week: s.Week, StudentID: s.StudentID, Type: s.Type}
}

// SubmissionKey identifies the slot a submission occupies.
type SubmissionKey struct {
	CourseID  string
	Week      int
	StudentID string
	Type      SubmissionType
}

// SiteNotice is a site-wide announcement visible to everyone.
type SiteNotice struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
	CreatedAt  string `json:"createdAt"`
}

// CourseNotice is an announcement scoped to a single course.
type CourseNotice struct {
	ID         string `json:"id"`
	CourseID   string `json:"courseId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
	CreatedAt  string `json:"createdAt"`
}

// CourseQnA is a student question on a course, optionally carrying the
// admin's answer. A question is visible only to its author and to admins;
// the store's read path enforces this.
type CourseQnA struct {
	ID          string `json:"id"`
	CourseID    string `json:"courseId"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CreatedAt   string `json:"createdAt"`
	Answer      string `json:"answer,omitempty"`
	AnsweredAt  string `json:"answeredAt,omitempty"`
}

// Message is a direct message between the admin and a student. A
// conversation between two parties is the set of messages whose
// sender/receiver pair matches in either direction, ordered by CreatedAt.
type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
	Read       bool   `json:"read"`
}

// NewID returns a fresh entity id. UUIDs replace the short random strings
// the web client originally generated; collisions are a correctness bug,
// so the stronger generator is used everywhere ids are minted.
func NewID() string {
	return uuid.New().String()
}
