// Package session keeps one dashboard per open page. Each page render mints a
// session; the page's later requests carry its id.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"github.com/Sameer280406/Projects/internal/dashboard"
)

// MaxSessions limits concurrent sessions to prevent memory exhaustion
const MaxSessions = 100

// SessionMaxAge is how long an idle session is kept after its last request
const SessionMaxAge = 30 * time.Minute

// Logger is the subset of gommon/echo logging the manager writes to.
type Logger interface {
	Infof(format string, args ...interface{})
}

// Session is one page's dashboard.
type Session struct {
	ID        string
	Dashboard *dashboard.Dashboard
	CreatedAt time.Time

	// Guarded by Manager.mu.
	lastAccessed time.Time
	sockets      int
}

// Manager handles the dashboards of open pages.
type Manager struct {
	sessions     map[string]*Session
	mu           sync.RWMutex
	newDashboard func() *dashboard.Dashboard
	maxSessions  int
	logger       Logger
	now          func() time.Time
}

// NewManager creates a session manager. newDashboard builds the dashboard for
// each new session; maxSessions <= 0 uses MaxSessions.
func NewManager(newDashboard func() *dashboard.Dashboard, maxSessions int) *Manager {
	if maxSessions <= 0 {
		maxSessions = MaxSessions
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		newDashboard: newDashboard,
		maxSessions:  maxSessions,
		logger:       log.New("session"),
		now:          time.Now,
	}
}

// SetLogger replaces the diagnostic logger.
func (m *Manager) SetLogger(l Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = l
}

// Create starts a session with a fresh, idle dashboard.
func (m *Manager) Create() *Session {
	m.cleanupOldSessionsIfNeeded()

	now := m.now()
	s := &Session{
		ID:           uuid.New().String(),
		Dashboard:    m.newDashboard(),
		CreatedAt:    now,
		lastAccessed: now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Get returns the session and marks it as used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastAccessed = m.now()
	return s, true
}

// Attach records an open socket on s. The session is not cleaned up until
// the returned func has been called.
func (m *Manager) Attach(s *Session) func() {
	m.mu.Lock()
	s.sockets++
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			s.sockets--
			s.lastAccessed = m.now()
		})
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// active reports whether s still has a page attached or an upload running.
// Callers hold m.mu.
func (s *Session) active() bool {
	return s.sockets > 0 || s.Dashboard.State().Loading
}

// cleanupOldSessionsIfNeeded frees room for one more session by dropping the
// least recently used idle sessions. Active sessions are never dropped, so
// the limit can be exceeded while every session is in use.
func (m *Manager) cleanupOldSessionsIfNeeded() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) < m.maxSessions {
		return
	}

	idle := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if !s.active() {
			idle = append(idle, s)
		}
	}
	sort.Slice(idle, func(i, j int) bool {
		return idle[i].lastAccessed.Before(idle[j].lastAccessed)
	})

	toFree := len(m.sessions) - m.maxSessions + 1
	for i := 0; i < toFree && i < len(idle); i++ {
		delete(m.sessions, idle[i].ID)
		m.logger.Infof("[Manager] Evicted session %s to stay under %d sessions", idle[i].ID[:8], m.maxSessions)
	}
}

// CleanupOldSessions drops idle sessions not used for maxAge and returns how
// many were removed.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxAge)
	removed := 0
	for id, s := range m.sessions {
		if s.active() || !s.lastAccessed.Before(cutoff) {
			continue
		}
		delete(m.sessions, id)
		removed++
		m.logger.Infof("[Manager] Cleaned up aged session %s (last accessed: %s ago)",
			id[:8], m.now().Sub(s.lastAccessed).Round(time.Second))
	}
	return removed
}
