package session

import (
	"context"
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/iandyone/minesweeper-rss/internal/mines"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrHubFull  = errors.New("too many active sessions")
)

// NewRand returns a generator seeded from the runtime's hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

type entry struct {
	mu      sync.Mutex
	session *Session
	touched atomic.Int64
}

// Hub keeps live sessions in memory. Sessions untouched for longer than the
// TTL are dropped by [Hub.Cleanup].
type Hub struct {
	sessions map[uuid.UUID]*entry
	mu       sync.RWMutex
	limit    int
	ttl      time.Duration
	now      Clock
	newRand  func() *rand.Rand
}

func NewHub(limit int, ttl time.Duration, now Clock) *Hub {
	if now == nil {
		now = time.Now
	}
	return &Hub{
		sessions: make(map[uuid.UUID]*entry),
		limit:    limit,
		ttl:      ttl,
		now:      now,
		newRand:  NewRand,
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Create starts a new session and returns its id.
func (h *Hub) Create(params mines.GameParams) (uuid.UUID, error) {
	s, err := New(params, h.newRand(), h.now)
	if err != nil {
		return uuid.Nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.limit > 0 && len(h.sessions) >= h.limit {
		h.removeExpiredLocked()
		if len(h.sessions) >= h.limit {
			return uuid.Nil, ErrHubFull
		}
	}

	e := &entry{session: s}
	e.touched.Store(h.now().UnixNano())
	h.sessions[s.ID] = e
	return s.ID, nil
}

// With runs fn while holding the session's lock.
func (h *Hub) With(id uuid.UUID, fn func(*Session) error) error {
	h.mu.RLock()
	e, ok := h.sessions[id]
	h.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return ErrNotFound
	}
	e.touched.Store(h.now().UnixNano())
	return fn(e.session)
}

func (h *Hub) Remove(id uuid.UUID) {
	h.mu.Lock()
	e, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	e.session = nil
	e.mu.Unlock()
}

// Restart replaces the session with a fresh one using the same parameters.
func (h *Hub) Restart(id uuid.UUID) (uuid.UUID, error) {
	var params mines.GameParams
	err := h.With(id, func(s *Session) error {
		params = s.Params()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	h.Remove(id)
	return h.Create(params)
}

// Cleanup drops expired sessions and reports how many were removed.
func (h *Hub) Cleanup() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.removeExpiredLocked()
}

func (h *Hub) removeExpiredLocked() int {
	deadline := h.now().Add(-h.ttl).UnixNano()
	removed := 0
	for id, e := range h.sessions {
		if e.touched.Load() < deadline {
			delete(h.sessions, id)
			removed++
		}
	}
	return removed
}

// Maintain calls Cleanup every interval until ctx is done.
func (h *Hub) Maintain(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := h.Cleanup(); n > 0 {
				Log.WithField("removed", n).Debug("expired sessions removed")
			}
		}
	}
}
