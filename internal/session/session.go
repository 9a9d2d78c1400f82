// Package session keeps one query cache per browser session of the web
// front end. A session is created on the first request without a valid
// cookie and expires after an idle period; its cache goes with it.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/note-hub/internal/adapter"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/query"
	"github.com/MKhiriev/note-hub/internal/service"
)

// DefaultTTL is the idle time after which a session expires.
const DefaultTTL = 30 * time.Minute

// ErrEmptyID is returned when an id generator yields an empty id.
var ErrEmptyID = errors.New("session: empty id")

// IDGenerator produces session ids.
type IDGenerator interface {
	Generate() string
}

// Config tunes the caches and services created for each session.
type Config struct {
	TTL   time.Duration
	Notes service.NotesConfig

	// MaxSessions caps live sessions. Starting one more evicts the least
	// recently used. Zero means no cap.
	MaxSessions int

	DefaultStaleTime time.Duration
	GCTime           time.Duration
}

// Session is one browser session.
type Session struct {
	id    string
	notes service.NotesService
	cache *query.Client

	mu       sync.Mutex
	lastSeen time.Time
}

// ID returns the cookie value of the session.
func (s *Session) ID() string {
	return s.id
}

// Notes returns the notes service bound to the session's cache.
func (s *Session) Notes() service.NotesService {
	return s.notes
}

// Cache returns the session's query cache.
func (s *Session) Cache() *query.Client {
	return s.cache
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) lastSeenAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Manager owns every live session.
type Manager struct {
	adapter adapter.NotesAdapter
	ids     IDGenerator
	cfg     Config
	clock   query.Clock
	logger  *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option configures a [Manager].
type Option func(*Manager)

// WithClock replaces the wall clock. The clock is shared with the session
// caches.
func WithClock(clock query.Clock) Option {
	return func(m *Manager) { m.clock = clock }
}

// NewManager returns an empty manager. A zero TTL means [DefaultTTL].
func NewManager(notesAdapter adapter.NotesAdapter, ids IDGenerator, cfg Config, log *logger.Logger, opts ...Option) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	m := &Manager{
		adapter:  notesAdapter,
		ids:      ids,
		cfg:      cfg,
		logger:   log.WithComponent("sessions"),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = query.SystemClock()
	}
	return m
}

// Get returns the live session with the given id and marks it as used.
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}

	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}

	s.touch(m.clock.Now())
	return s, true
}

// Start creates a session with a fresh cache.
func (m *Manager) Start() (*Session, error) {
	id := m.ids.Generate()
	if id == "" {
		return nil, ErrEmptyID
	}

	opts := []query.Option{
		query.WithClock(m.clock),
		query.WithLogger(m.logger),
	}
	if m.cfg.DefaultStaleTime > 0 {
		opts = append(opts, query.WithDefaultStaleTime(m.cfg.DefaultStaleTime))
	}
	if m.cfg.GCTime > 0 {
		opts = append(opts, query.WithGCTime(m.cfg.GCTime))
	}
	cache := query.NewClient(opts...)

	s := &Session{
		id:       id,
		cache:    cache,
		notes:    service.NewNotesService(m.adapter, cache, m.cfg.Notes, m.logger),
		lastSeen: m.clock.Now(),
	}

	m.mu.Lock()
	var evicted *Session
	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		evicted = m.oldestLocked()
		delete(m.sessions, evicted.id)
	}
	m.sessions[id] = s
	total := len(m.sessions)
	m.mu.Unlock()

	if evicted != nil {
		evicted.cache.Clear()
		m.logger.Info().Str("evicted_session_id", evicted.id).Msg("session limit reached")
	}
	m.logger.Debug().Str("session_id", id).Int("sessions", total).Msg("session started")
	return s, nil
}

func (m *Manager) oldestLocked() *Session {
	var oldest *Session
	for _, s := range m.sessions {
		if oldest == nil || s.lastSeenAt().Before(oldest.lastSeenAt()) {
			oldest = s
		}
	}
	return oldest
}

// GetOrStart returns the session with id or starts a new one. The boolean
// reports whether a session was started.
func (m *Manager) GetOrStart(id string) (*Session, bool, error) {
	if s, ok := m.Get(id); ok {
		return s, false, nil
	}
	s, err := m.Start()
	return s, err == nil, err
}

// Expire ends every session idle for longer than the TTL and clears its
// cache. It returns the number of sessions ended.
func (m *Manager) Expire() int {
	now := m.clock.Now()

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.idleSince(now) > m.cfg.TTL {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.cache.Clear()
	}
	if len(expired) > 0 {
		m.logger.Info().Int("expired", len(expired)).Msg("idle sessions expired")
	}
	return len(expired)
}

// GC collects unused entries of every session cache and returns the number
// of entries dropped.
func (m *Manager) GC() int {
	m.mu.Lock()
	caches := make([]*query.Client, 0, len(m.sessions))
	for _, s := range m.sessions {
		caches = append(caches, s.cache)
	}
	m.mu.Unlock()

	dropped := 0
	for _, c := range caches {
		dropped += c.GC()
	}
	return dropped
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// TTL returns the idle timeout.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}
