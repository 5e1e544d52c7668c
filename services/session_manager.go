package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionManager holds the set of live admin session tokens in memory.
// Sessions are created on successful login and exist only for the
// lifetime of the process; the cookie carrying the token is a browser
// session cookie, so the client side of a session dies with the tab.
// There is deliberately no revoke/logout operation.
type SessionManager struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

// NewSessionManager creates an empty session store.
func NewSessionManager() *SessionManager {
	return &SessionManager{tokens: make(map[string]time.Time)}
}

// Issue creates a new opaque session token and records it as live.
func (s *SessionManager) Issue() string {
	token := uuid.New().String()
	s.mu.Lock()
	s.tokens[token] = time.Now()
	s.mu.Unlock()
	log.Println("INFO: [SessionManager] New admin session issued.")
	return token
}

// IsLive reports whether the given token belongs to a live session.
func (s *SessionManager) IsLive(token string) bool {
	if token == "" {
		return false
	}
	s.mu.RLock()
	_, ok := s.tokens[token]
	s.mu.RUnlock()
	return ok
}
