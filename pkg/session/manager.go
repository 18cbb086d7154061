package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/goliatone/go-reportgen/pkg/catalog"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session: not found")

// ErrSessionExists is returned when a generated id is already live.
var ErrSessionExists = errors.New("session: id already in use")

// DefaultIdleTTL is how long an untouched session is kept.
const DefaultIdleTTL = 2 * time.Hour

type entry struct {
	mu      sync.Mutex
	session *Session
}

// Manager keeps sessions in memory and expires idle ones. Calls on the same
// session are serialised.
type Manager struct {
	reader   catalog.Reader
	cache    *cache.Cache
	ttl      time.Duration
	logger   *zap.Logger
	newID    func() string
	sessions []Option
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithIdleTTL sets how long an untouched session survives.
func WithIdleTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithSessionOptions applies opts to every session the manager creates.
func WithSessionOptions(opts ...Option) ManagerOption {
	return func(m *Manager) {
		m.sessions = append(m.sessions, opts...)
	}
}

func WithManagerLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithIDGenerator replaces the uuid session id source.
func WithIDGenerator(gen func() string) ManagerOption {
	return func(m *Manager) {
		if gen != nil {
			m.newID = gen
		}
	}
}

// NewManager creates an empty manager resolving instances through reader.
func NewManager(reader catalog.Reader, opts ...ManagerOption) *Manager {
	m := &Manager{
		reader: reader,
		ttl:    DefaultIdleTTL,
		logger: zap.NewNop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.cache = cache.New(m.ttl, m.ttl/2)
	m.cache.OnEvicted(func(id string, _ any) {
		m.logger.Debug("session evicted", zap.String("session", id))
	})
	return m
}

// Create starts a new session and returns its initial view.
func (m *Manager) Create(ctx context.Context) (View, error) {
	if err := ctx.Err(); err != nil {
		return View{}, err
	}
	id := m.newID()
	opts := append([]Option{WithLogger(m.logger)}, m.sessions...)
	opts = append(opts, WithID(id))
	s := New(m.reader, opts...)
	if err := m.cache.Add(id, &entry{session: s}, cache.DefaultExpiration); err != nil {
		return View{}, fmt.Errorf("%w: %q", ErrSessionExists, id)
	}
	m.logger.Info("session created", zap.String("session", id))
	return s.View(), nil
}

// Do runs fn with exclusive access to the session and refreshes its idle
// deadline.
func (m *Manager) Do(id string, fn func(*Session) error) error {
	x, found := m.cache.Get(id)
	if !found {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	e := x.(*entry)

	e.mu.Lock()
	defer e.mu.Unlock()
	m.cache.Set(id, e, cache.DefaultExpiration)
	return fn(e.session)
}

// View returns the current snapshot of session id.
func (m *Manager) View(id string) (View, error) {
	var view View
	err := m.Do(id, func(s *Session) error {
		view = s.View()
		return nil
	})
	return view, err
}

// Delete discards session id and reports whether it existed.
func (m *Manager) Delete(id string) bool {
	if _, found := m.cache.Get(id); !found {
		return false
	}
	m.cache.Delete(id)
	return true
}

// Len returns the number of live sessions, expired ones included until the
// next cleanup.
func (m *Manager) Len() int {
	return m.cache.ItemCount()
}
