package session

import "sync"

// Registry holds active sessions in memory, at most one per user. Starting
// a new session abandons the user's previous one so a stale countdown can
// never fire a duplicate auto-submit.
type Registry struct {
	mu       sync.Mutex
	byID     map[string]*Session
	byUserID map[string]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[string]*Session),
		byUserID: make(map[string]string),
	}
}

// Put registers a session, abandoning any previous session of the same user.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	prevID, hadPrev := r.byUserID[s.UserID]
	var prev *Session
	if hadPrev {
		prev = r.byID[prevID]
		delete(r.byID, prevID)
	}
	r.byID[s.ID] = s
	r.byUserID[s.UserID] = s.ID
	r.mu.Unlock()

	if prev != nil {
		prev.Abandon()
	}
}

// Get returns the session for id, restricted to its owning user.
func (r *Registry) Get(id, userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok || s.UserID != userID {
		return nil
	}
	return s
}

// Remove drops a session from the registry without abandoning it.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byID, id)
	if r.byUserID[s.UserID] == id {
		delete(r.byUserID, s.UserID)
	}
}
