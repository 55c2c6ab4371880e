// Package state remembers which documents were already in sync after a run.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const stateFileName = "sync_state.json"

// FileState is what was recorded for one document after a successful sync.
type FileState struct {
	Hash        string `json:"hash"`
	Fingerprint string `json:"fingerprint"`
}

// Store manages persistent sync state keyed by absolute path.
type Store struct {
	path  string
	data  map[string]FileState
	mu    sync.RWMutex
	dirty bool
}

// Open creates or loads state from path. An empty path selects
// XDG_STATE_HOME/mdtoc/sync_state.json.
func Open(path string) (*Store, error) {
	if path == "" {
		path = filepath.Join(DefaultDir(), stateFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	store := &Store{
		path: path,
		data: make(map[string]FileState),
	}
	if err := store.load(); err != nil {
		// Non-fatal - start with empty state
		store.data = make(map[string]FileState)
	}
	return store, nil
}

// DefaultDir returns XDG_STATE_HOME/mdtoc or ~/.local/state/mdtoc
func DefaultDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "mdtoc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "mdtoc")
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

// Hash returns the content hash used for file identity.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:16]) // First 16 bytes = 32 hex chars
}

func key(filename string) string {
	if abs, err := filepath.Abs(filename); err == nil {
		return abs
	}
	return filepath.Clean(filename)
}

// Unchanged reports whether filename was recorded with this hash and fingerprint.
func (s *Store) Unchanged(filename, hash, fingerprint string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.data[key(filename)]
	return ok && st.Hash == hash && st.Fingerprint == fingerprint
}

// Record remembers the synced state of filename. Call Save to persist.
func (s *Store) Record(filename, hash, fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key(filename)] = FileState{Hash: hash, Fingerprint: fingerprint}
	s.dirty = true
}

// Forget drops any record for filename.
func (s *Store) Forget(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key(filename)]; ok {
		delete(s.data, key(filename))
		s.dirty = true
	}
}

// Len returns the number of recorded files.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Save writes the state file if anything changed since the last load or save.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}
