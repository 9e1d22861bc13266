package arena

import "sync"

// SessionDirectory holds every live session keyed by id. Compound operations
// (matchmaking claims, move application, terminal removal) run inside the hub
// under this lock; no I/O ever happens while it is held.
type SessionDirectory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionDirectory() *SessionDirectory {
	return &SessionDirectory{sessions: make(map[string]*Session)}
}

// Snapshot returns a shallow copy of a session's scalar state, or nil when
// the id is gone. Used by tests and introspection, not by the move path.
func (d *SessionDirectory) Snapshot(id string) *Session {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.sessions[id]
	if !ok {
		return nil
	}
	c := *s
	c.Reps = nil
	return &c
}

func (d *SessionDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}
