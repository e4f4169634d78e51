// Package persist writes the full application state to a local JSON file
// after every mutation and loads it back at startup. The local copy is a
// convenience cache so the app works offline and restarts warm; the
// remote record, not this file, is the source of truth across devices.
package persist

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/educreatorschool-design/hanvitlms/internal/store"
	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

// StateFileName is the fixed name of the local state slot inside the
// data directory.
const StateFileName = "hanvit-lms-state.json"

// FileStore persists the application state to one file on disk.
type FileStore struct {
	path string
}

// New creates a FileStore rooted at dataDir. The directory is created on
// first save if it does not exist.
func New(dataDir string) *FileStore {
	return &FileStore{path: filepath.Join(dataDir, StateFileName)}
}

// Path returns the full path of the state file.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the persisted state. Returns (nil, nil) when no state file
// exists yet: a fresh install, not an error.
func (f *FileStore) Load() (*model.PersistedState, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state model.PersistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	state.Normalize()
	return &state, nil
}

// Save writes the full state. The write is atomic: a temp file in the
// same directory is renamed over the old state, so a crash mid-write
// never leaves a truncated file.
func (f *FileStore) Save(state *model.PersistedState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, StateFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Attach registers the FileStore as a change subscriber on st: every
// successful mutation persists the whole state. Write failures are
// logged, never surfaced; losing the local cache must not break the
// running app.
func (f *FileStore) Attach(st *store.Store) {
	st.Subscribe(func() {
		state, err := st.PersistedState()
		if err != nil {
			log.Printf("[WARN] Skipping persist, state copy failed: %v", err)
			return
		}
		if err := f.Save(state); err != nil {
			log.Printf("[WARN] Failed to persist state: %v", err)
		}
	})
}
