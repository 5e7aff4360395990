package whatsapp

import (
	"sync"
	"time"
)

// Session is what the service remembers about a sender between messages.
type Session struct {
	Timeline    string
	LastCommand time.Time
}

// SessionManager keeps per-sender sessions in memory.
type SessionManager struct {
	sessions map[string]Session
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]Session),
	}
}

// GetSession retrieves the current session for a sender.
func (sm *SessionManager) GetSession(userID string) Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[userID]
}

// UpdateSession replaces the session for a sender.
func (sm *SessionManager) UpdateSession(userID string, session Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[userID] = session
}
