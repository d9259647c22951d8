// Package session provides admin session management.
// Sessions live in memory and are mirrored to a durable Store so they
// survive a process restart.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is how long a freshly created session stays valid.
const DefaultTTL = 24 * time.Hour

// idBytes is the amount of randomness in a session id (256 bits).
const idBytes = 32

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when a session has expired
	ErrSessionExpired = errors.New("session expired")
)

// Manager owns the set of live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option customises a Manager.
type Option func(*Manager)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a session manager mirroring to store.
func NewManager(store Store, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		ttl:      DefaultTTL,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load pulls every persisted session into memory and returns how many are held.
// Records that cannot be read are skipped by the store.
func (m *Manager) Load(ctx context.Context) (int, error) {
	loaded, err := m.store.LoadAll(ctx)
	if err != nil {
		m.logger.Error("Error loading sessions", "error", err)
		return 0, fmt.Errorf("failed to load sessions: %w", err)
	}

	m.mu.Lock()
	for id, s := range loaded {
		m.sessions[id] = s
	}
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info("Loaded sessions", "count", count)
	return count, nil
}

// Create starts a session for username and returns its id.
func (m *Manager) Create(ctx context.Context, username string) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}

	now := m.now()
	s := &Session{
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	// persistence is best effort; the in-memory copy stays authoritative
	if err := m.store.Save(ctx, id, s); err != nil {
		m.logger.Error("Error saving session", "error", err)
	}

	return id, nil
}

// Get returns the live session for id, dropping it if it has expired.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	if s.ExpiredAt(m.now()) {
		m.remove(ctx, id)
		return nil, ErrSessionExpired
	}

	cp := *s
	return &cp, nil
}

// Validate reports whether id names a live session.
func (m *Manager) Validate(ctx context.Context, id string) bool {
	_, err := m.Get(ctx, id)
	return err == nil
}

// Destroy removes the session and reports whether there was one to remove.
func (m *Manager) Destroy(ctx context.Context, id string) bool {
	return m.remove(ctx, id)
}

// Count returns the number of sessions held in memory, expired ones included.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) remove(ctx context.Context, id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return false
	}

	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.Error("Error removing session", "error", err)
	}
	return true
}

func generateID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
