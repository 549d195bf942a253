package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/pharmakit/backoffice/core/logger"
)

// Manager is the single owner of the in-memory session. It loads the
// cold-start snapshot from the store, serves synchronous snapshot reads,
// and confines mutation to exactly two operations: SetCredentials and
// Logout. Both persist to the store before touching memory, so the store
// is the source of truth after a crash.
type Manager struct {
	mu    sync.RWMutex
	store Store
	cur   Session
	log   *slog.Logger
}

// Option is a functional option for configuring the manager.
type Option func(*Manager)

// WithLogger sets the logger for session lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a manager seeded from the store's persisted snapshot.
// A missing snapshot yields the unauthenticated default; a corrupt one is
// logged and likewise degrades to the default rather than failing startup.
func NewManager(ctx context.Context, store Store, opts ...Option) (*Manager, error) {
	m := &Manager{store: store, log: logger.Discard()}
	for _, opt := range opts {
		opt(m)
	}

	sess, err := store.Load(ctx)
	switch {
	case err == nil:
		if !sess.valid() {
			m.log.Warn("persisted session violates token/user invariant, discarding",
				logger.Component("session"))
			sess = Session{}
		}
		m.cur = sess
	case errors.Is(err, ErrNotFound):
		// cold start with no prior login
	case errors.Is(err, ErrCorruptSnapshot):
		m.log.Warn("corrupt session snapshot, starting unauthenticated",
			logger.Component("session"), logger.Error(err))
	default:
		return nil, err
	}

	return m, nil
}

// Current returns a snapshot of the session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Token returns the current bearer credential, empty when unauthenticated.
// It satisfies apiclient.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur.Token
}

// IsAuthenticated reports whether a credential is present.
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

// SetCredentials replaces the session wholesale. The snapshot is persisted
// before the in-memory state is updated; on persistence failure memory is
// left unchanged.
func (m *Manager) SetCredentials(ctx context.Context, sess Session) error {
	if !sess.valid() {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, sess); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	m.cur = sess

	m.log.Info("session replaced", logger.Component("session"),
		logger.Key("authenticated", sess.IsAuthenticated()))
	return nil
}

// Logout resets the session to the unauthenticated default, removing the
// persisted snapshot first.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return errors.Join(ErrClearSession, err)
	}
	m.cur = Session{}

	m.log.Info("session cleared", logger.Component("session"))
	return nil
}
