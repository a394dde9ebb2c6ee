package memory

import (
	"sync"

	"cyberquiz-service/internal/quiz"
)

// SessionStore is an in-memory implementation of app.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*quiz.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*quiz.Session),
	}
}

func (s *SessionStore) Put(userID, topicID string, session *quiz.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key(userID, topicID)] = session
}

func (s *SessionStore) Get(userID, topicID string) (*quiz.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[key(userID, topicID)]
	return session, ok
}

func (s *SessionStore) Delete(userID, topicID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key(userID, topicID))
}

func key(userID, topicID string) string {
	return userID + "/" + topicID
}
