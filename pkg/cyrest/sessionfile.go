package cyrest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// StateFile persists session-state defaults as a JSON file so successive
// CLI invocations share the same "current network" without re-selecting it.
// The file lives under the user config directory and is written with mode
// 0600, matching the conventions of other per-user state files.
type StateFile struct {
	mu   sync.Mutex
	path string
}

// NewStateFile creates a file-backed session-state store.
// If path is empty, defaults to ~/.config/cygo/session.json.
func NewStateFile(path string) (*StateFile, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "cygo", "session.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &StateFile{path: path}, nil
}

// Path returns the session file location.
func (f *StateFile) Path() string { return f.path }

// Load reads persisted defaults into state. A missing file is not an
// error; it simply leaves state untouched.
func (f *StateFile) Load(state *SessionState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read session file: %w", err)
	}

	var m map[StateKind]ID
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse session file: %w", err)
	}
	state.restore(m)
	return nil
}

// Save writes the state snapshot to disk.
func (f *StateFile) Save(state *SessionState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(state.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Delete removes the persisted file. Deleting a file that does not exist
// is not an error.
func (f *StateFile) Delete() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
