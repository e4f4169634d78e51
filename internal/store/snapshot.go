package store

import (
	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

// Snapshot returns a deep copy of all synchronized collections. The copy
// never aliases the store's internal slices, so it is safe to hand to the
// sync bridge or an export writer. The clone runs under the mutex: many
// mutations compact or overwrite the backing arrays in place, so reading
// the element data without the lock would race with them.
func (s *Store) Snapshot() (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot.Clone()
}

// PersistedState returns a deep copy of the full locally persisted state,
// including the current session. Like Snapshot, the clone holds the mutex
// for the whole copy.
func (s *Store) PersistedState() (*model.PersistedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone, err := s.state.Snapshot.Clone()
	if err != nil {
		return nil, err
	}
	out := &model.PersistedState{Snapshot: *clone}
	if s.state.CurrentUser != nil {
		u := *s.state.CurrentUser
		out.CurrentUser = &u
	}
	return out, nil
}

// Export serializes every synchronized collection to JSON. The current
// session is deliberately excluded.
func (s *Store) Export() ([]byte, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Encode()
}

// Import parses an exported snapshot and wholesale-replaces every
// collection. Fails closed: on a malformed payload or missing mandatory
// users/courses keys the existing state is left untouched and a
// *model.ErrBadSnapshot is returned.
func (s *Store) Import(data []byte) error {
	snap, err := model.ParseSnapshot(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state.Snapshot = *snap
	s.mu.Unlock()
	s.notify()
	return nil
}

// LoadPersisted seeds the store from a previously persisted state.
// Intended for startup, before subscribers are registered; it does not
// notify.
func (s *Store) LoadPersisted(state *model.PersistedState) {
	s.mu.Lock()
	s.state = *state
	s.state.Normalize()
	s.mu.Unlock()
}

// ApplyRemote replaces local collections with an inbound remote snapshot
// in one atomic step; no reader observes a mix of old and new
// collections. A nil users collection on the remote side keeps the local
// one (the remote record may predate a local registration); every other
// nil collection empties the local one, matching the remote record's
// whole-snapshot last-writer-wins contract.
func (s *Store) ApplyRemote(snap *model.Snapshot) {
	s.mu.Lock()
	if snap.Users != nil {
		s.state.Users = snap.Users
	}
	s.state.Courses = orEmpty(snap.Courses)
	s.state.Submissions = orEmpty(snap.Submissions)
	s.state.SiteNotices = orEmpty(snap.SiteNotices)
	s.state.CourseNotices = orEmpty(snap.CourseNotices)
	s.state.CourseQnAs = orEmpty(snap.CourseQnAs)
	s.state.Messages = orEmpty(snap.Messages)
	s.mu.Unlock()
	s.notify()
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
