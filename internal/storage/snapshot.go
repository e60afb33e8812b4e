package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/JamesPrial/workboard/internal/board"
)

// DefaultKey is the storage key the board snapshot lives under.
const DefaultKey = "workmgr_v1"

// SnapshotStore adapts a Backend to board.Persistence by storing the whole
// board snapshot as one JSON value under Key.
type SnapshotStore struct {
	Backend Backend
	Key     string
	Logger  *log.Logger
}

// NewSnapshotStore binds backend to key. An empty key means DefaultKey and a
// nil logger discards diagnostics.
func NewSnapshotStore(backend Backend, key string, logger *log.Logger) *SnapshotStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SnapshotStore{Backend: backend, Key: key, Logger: logger}
}

// Load reads the snapshot.
//
// An absent key, a value that is not a JSON object, or a snapshot that fails
// validation all report found=false, so the caller seeds defaults. There is no
// partial recovery. Only a backend read failure returns an error.
func (s *SnapshotStore) Load() (board.Snapshot, bool, error) {
	raw, found, err := s.Backend.Get(s.Key)
	if err != nil {
		return board.Snapshot{}, false, fmt.Errorf("%w: load %q: %w", board.ErrPersistenceUnavailable, s.Key, err)
	}
	if !found {
		return board.Snapshot{}, false, nil
	}

	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		s.Logger.Printf("stored value under %q is not an object, using defaults", s.Key)
		return board.Snapshot{}, false, nil
	}
	var snap board.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.Logger.Printf("stored value under %q is malformed, using defaults: %v", s.Key, err)
		return board.Snapshot{}, false, nil
	}
	if err := snap.Validate(); err != nil {
		s.Logger.Printf("stored snapshot under %q is invalid, using defaults: %v", s.Key, err)
		return board.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save serializes the full snapshot and overwrites the stored value.
func (s *SnapshotStore) Save(snap board.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.Backend.Put(s.Key, data); err != nil {
		return fmt.Errorf("%w: save %q: %w", board.ErrPersistenceUnavailable, s.Key, err)
	}
	return nil
}
