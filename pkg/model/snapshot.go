package model

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the full serialized contents of all synchronized collections
// at one instant. It is the unit of exchange everywhere state leaves the
// process: the local persisted copy, the remote sync record and
// export/import files all share this shape.
type Snapshot struct {
	Users         []User         `json:"users"`
	Courses       []Course       `json:"courses"`
	Submissions   []Submission   `json:"submissions"`
	SiteNotices   []SiteNotice   `json:"siteNotices"`
	CourseNotices []CourseNotice `json:"courseNotices"`
	CourseQnAs    []CourseQnA    `json:"courseQnAs"`
	Messages      []Message      `json:"messages"`
}

// ErrBadSnapshot indicates an import/parse failure: either the payload is
// not valid JSON or it lacks the mandatory users/courses collections.
type ErrBadSnapshot struct {
	Reason string
}

func (e *ErrBadSnapshot) Error() string {
	return fmt.Sprintf("invalid snapshot: %s", e.Reason)
}

// ParseSnapshot decodes a snapshot from JSON, failing closed. The users
// and courses keys are mandatory; every other collection defaults to
// empty when absent so older export files stay importable.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	// Pointer slices distinguish "key absent" from "empty array".
	var raw struct {
		Users         *[]User         `json:"users"`
		Courses       *[]Course       `json:"courses"`
		Submissions   *[]Submission   `json:"submissions"`
		SiteNotices   *[]SiteNotice   `json:"siteNotices"`
		CourseNotices *[]CourseNotice `json:"courseNotices"`
		CourseQnAs    *[]CourseQnA    `json:"courseQnAs"`
		Messages      *[]Message      `json:"messages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ErrBadSnapshot{Reason: fmt.Sprintf("not valid JSON: %v", err)}
	}

	if raw.Users == nil {
		return nil, &ErrBadSnapshot{Reason: "missing required collection: users"}
	}
	if raw.Courses == nil {
		return nil, &ErrBadSnapshot{Reason: "missing required collection: courses"}
	}

	snap := &Snapshot{
		Users:   *raw.Users,
		Courses: *raw.Courses,
	}
	if raw.Submissions != nil {
		snap.Submissions = *raw.Submissions
	}
	if raw.SiteNotices != nil {
		snap.SiteNotices = *raw.SiteNotices
	}
	if raw.CourseNotices != nil {
		snap.CourseNotices = *raw.CourseNotices
	}
	if raw.CourseQnAs != nil {
		snap.CourseQnAs = *raw.CourseQnAs
	}
	if raw.Messages != nil {
		snap.Messages = *raw.Messages
	}
	snap.Normalize()

	return snap, nil
}

// Encode serializes the snapshot to JSON.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Normalize replaces nil collections with empty slices so encoded
// snapshots always carry every key as an array.
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Courses == nil {
		s.Courses = []Course{}
	}
	if s.Submissions == nil {
		s.Submissions = []Submission{}
	}
	if s.SiteNotices == nil {
		s.SiteNotices = []SiteNotice{}
	}
	if s.CourseNotices == nil {
		s.CourseNotices = []CourseNotice{}
	}
	if s.CourseQnAs == nil {
		s.CourseQnAs = []CourseQnA{}
	}
	if s.Messages == nil {
		s.Messages = []Message{}
	}
}

// Clone returns a deep copy of the snapshot via a JSON round trip. Used
// where a snapshot crosses a goroutine boundary and must not alias the
// store's internal slices.
func (s *Snapshot) Clone() (*Snapshot, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to clone snapshot: %w", err)
	}
	var out Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to clone snapshot: %w", err)
	}
	out.Normalize()
	return &out, nil
}

// PersistedState is the locally persisted superset of Snapshot: the same
// collections plus the current session. Only the snapshot part is ever
// synchronized or exported.
type PersistedState struct {
	CurrentUser *User `json:"currentUser"`
	Snapshot
}
