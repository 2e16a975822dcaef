package conversation

import "sync"

// SessionStore keeps per-user sessions in memory. With serializes all work
// for a given user: the callback runs while that user's lock is held, so two
// webhook deliveries for the same sender cannot interleave mid-flow. Different
// users proceed independently.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*userSession
}

type userSession struct {
	mu      sync.Mutex
	session Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*userSession),
	}
}

func (s *SessionStore) get(userID string) *userSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	us, ok := s.sessions[userID]
	if !ok {
		us = &userSession{session: Session{State: StateIdle}}
		s.sessions[userID] = us
	}
	return us
}

// With runs fn with exclusive access to the user's session. Mutations made by
// fn are retained.
func (s *SessionStore) With(userID string, fn func(*Session)) {
	us := s.get(userID)
	us.mu.Lock()
	defer us.mu.Unlock()
	fn(&us.session)
}

// Snapshot returns a copy of the user's current session.
func (s *SessionStore) Snapshot(userID string) Session {
	us := s.get(userID)
	us.mu.Lock()
	defer us.mu.Unlock()
	return us.session
}
