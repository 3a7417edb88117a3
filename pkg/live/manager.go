package live

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/enliven-dev/enliven/pkg/dom"
)

// Manager owns the live sessions of one server.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	config   *Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewManager creates a session manager. A nil config means defaults.
func NewManager(config *Config, logger *slog.Logger) *Manager {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		config:   config,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Handler returns the WebSocket endpoint. Every accepted connection gets
// a fresh document from newDoc and a session bound to it.
func (m *Manager) Handler(newDoc func() *dom.Document) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := m.upgrader.Upgrade(w, r, nil)
		if err != nil {
			m.logger.Error("upgrade failed", "error", err)
			getMetrics().wsErrors.WithLabelValues("upgrade").Inc()
			return
		}

		s := newSession(generateSessionID(), conn, newDoc(), m.config, m.logger)
		s.onClose = m.remove

		m.mu.Lock()
		m.sessions[s.ID] = s
		m.mu.Unlock()
		getMetrics().activeSessions.Inc()
		m.logger.Info("session started", "session_id", s.ID, "remote", r.RemoteAddr)

		if err := s.Start(); err != nil {
			m.logger.Error("session start failed", "session_id", s.ID, "error", err)
			s.Close()
		}
	})
}

// Get returns the session with the given id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Each calls fn for every active session.
func (m *Manager) Each(fn func(*Session)) {
	m.mu.Lock()
	snapshot := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		snapshot = append(snapshot, s)
	}
	m.mu.Unlock()

	for _, s := range snapshot {
		fn(s)
	}
}

// CloseAll tears down every session.
func (m *Manager) CloseAll() {
	m.Each(func(s *Session) { s.Close() })
}

func (m *Manager) remove(s *Session) {
	m.mu.Lock()
	_, ok := m.sessions[s.ID]
	delete(m.sessions, s.ID)
	m.mu.Unlock()
	if ok {
		getMetrics().activeSessions.Dec()
		m.logger.Info("session closed", "session_id", s.ID)
	}
}

// generateSessionID returns a cryptographically random session id.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}
