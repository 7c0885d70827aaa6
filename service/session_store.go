package service

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"product-catalog/catalog"
)

// Session is the catalog of one visitor.
// Callers must hold the lock while using the controller or renderer.
type Session struct {
	ID string

	mu       sync.Mutex
	ctrl     *catalog.Controller
	renderer *HTMLRenderer
	lastSeen time.Time
}

// Lock locks the session
func (s *Session) Lock() { s.mu.Lock() }

// Unlock unlocks the session
func (s *Session) Unlock() { s.mu.Unlock() }

// Controller returns the session's catalog controller
func (s *Session) Controller() *catalog.Controller { return s.ctrl }

// Renderer returns the session's renderer
func (s *Session) Renderer() *HTMLRenderer { return s.renderer }

// SessionFactory builds the controller and renderer of a new session
type SessionFactory func() (*catalog.Controller, *HTMLRenderer)

// SessionStore keeps visitor sessions in memory and expires idle ones
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	factory  SessionFactory
	now      func() time.Time
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(ttl time.Duration, factory SessionFactory) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
	}
}

// Get returns the session with id, creating a new one when id is unknown or expired.
// created reports whether a new session was made.
func (s *SessionStore) Get(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[id]; ok && !s.expired(sess, now) {
		sess.lastSeen = now
		return sess, false
	}

	ctrl, renderer := s.factory()
	sess = &Session{
		ID:       ulid.Make().String(),
		ctrl:     ctrl,
		renderer: renderer,
		lastSeen: now,
	}
	s.sessions[sess.ID] = sess
	return sess, true
}

// TTL returns the idle time after which sessions expire
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				log.Ctx(ctx).Debug().Int("removed", removed).Msg("SessionStore: expired sessions swept")
			}
		}
	}
}

func (s *SessionStore) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}
