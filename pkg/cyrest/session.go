package cyrest

import (
	"sync"
)

// StateKind identifies a session-state slot.
type StateKind string

// Session-state slots. Calls that omit an explicit target fall back to the
// current identifier of the matching kind.
const (
	KindNetwork StateKind = "network"
	KindView    StateKind = "view"
	KindStyle   StateKind = "style"
)

// ID is an opaque handle assigned by Cytoscape to a network, node, edge,
// view, or style. The client never interprets its internal structure, only
// passes it back verbatim. Numeric SUIDs are carried in their decimal
// string form.
type ID string

// SessionState caches the "current" network, view, and style so calls that
// omit these parameters default sensibly.
//
// All methods are safe for concurrent use. A call's resolved parameters are
// computed from the snapshot taken at call start; a concurrent update from
// another in-flight call never retroactively affects an already-resolved
// call. Last writer wins.
type SessionState struct {
	mu      sync.Mutex
	current map[StateKind]ID
}

// NewSessionState creates an empty session-state cache.
func NewSessionState() *SessionState {
	return &SessionState{current: make(map[StateKind]ID)}
}

// Default returns the cached identifier for kind, if any.
func (s *SessionState) Default(kind StateKind) (ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.current[kind]
	return id, ok
}

// SetCurrent records id as the current identifier for kind.
func (s *SessionState) SetCurrent(kind StateKind, id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[kind] = id
}

// Clear removes the cached identifier for kind.
func (s *SessionState) Clear(kind StateKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.current, kind)
}

// Reset drops all cached identifiers.
func (s *SessionState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = make(map[StateKind]ID)
}

// Snapshot returns a copy of the current state. Readers always see a
// fully-formed snapshot, never a partially updated one.
func (s *SessionState) Snapshot() map[StateKind]ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[StateKind]ID, len(s.current))
	for k, v := range s.current {
		out[k] = v
	}
	return out
}

// restore replaces the whole state, used by file-backed persistence.
func (s *SessionState) restore(m map[StateKind]ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = make(map[StateKind]ID, len(m))
	for k, v := range m {
		s.current[k] = v
	}
}
