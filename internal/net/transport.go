package net

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"CanvasBoard/internal/logger"
	"CanvasBoard/internal/state"
)

// Session is one connected client and the document it edits. Documents are
// never shared between sessions.
type Session struct {
	ID    string
	Conn  *websocket.Conn
	Store *state.Store

	writeMu sync.Mutex
}

// NewSession wraps conn with a fresh document.
func NewSession(conn *websocket.Conn, store *state.Store) *Session {
	return &Session{
		ID:    uuid.NewString(),
		Conn:  conn,
		Store: store,
	}
}

// SendState writes the current document to the client.
func (s *Session) SendState() error {
	st := s.Store.Observe()
	return s.send(ServerMessage{
		Type:    TypeState,
		Session: s.ID,
		Version: s.Store.Version(),
		State:   &st,
	})
}

// SendError reports a rejected message to the client.
func (s *Session) SendError(err error) error {
	return s.send(ServerMessage{Type: TypeError, Session: s.ID, Error: err.Error()})
}

func (s *Session) send(msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", msg.Type, err)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.Conn.WriteMessage(websocket.TextMessage, data)
}

// SessionManager is used by the host to track active sessions.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewSessionManager creates a new manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

// Add registers a session that just connected.
func (sm *SessionManager) Add(s *Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[s.ID] = s
	logger.InfoTagf("net", "Session %s connected from %s", s.ID, s.Conn.RemoteAddr())
}

// Remove forgets a session. It does not close the connection.
func (sm *SessionManager) Remove(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.sessions[id]; ok {
		delete(sm.sessions, id)
		logger.InfoTagf("net", "Session %s closed", id)
	}
}

// Get returns the session with the given id.
func (sm *SessionManager) Get(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	return s, ok
}

// Count is the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CloseAll closes every connection. Their read loops remove them.
func (sm *SessionManager) CloseAll() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for _, s := range sm.sessions {
		s.writeMu.Lock()
		_ = s.Conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "host shutting down"))
		s.writeMu.Unlock()
		s.Conn.Close()
	}
}
