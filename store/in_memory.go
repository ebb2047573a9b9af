// Package store provides Task Store implementations for session persistence.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/homemesh/core"
)

// InMemoryStore is a volatile TaskStore implementation keeping sessions in a
// process local map with per-entry expiry. It is safe for concurrent access
// and best suited for tests or single-node deployments. Each returned
// session is cloned to prevent external mutation of internal state.
//
// Entries expire ttl after the last Put. Expired entries are treated as
// absent on Get and are additionally swept by an optional background janitor
// so an idle store does not grow unboundedly.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	now func() time.Time

	janitorStop chan struct{}
	janitorDone chan struct{}
	closeOnce   sync.Once
}

type entry struct {
	session   *core.Session
	expiresAt time.Time // zero means no expiry
}

// Options configures an InMemoryStore.
type Options struct {
	// CleanupInterval is the period of the background expiry sweep.
	// Set to 0 to disable the janitor; expired entries are then only
	// reclaimed lazily on access.
	CleanupInterval time.Duration

	// Now overrides the clock, used by tests to exercise expiry without
	// sleeping.
	Now func() time.Time
}

// NewInMemoryStore constructs an empty in-memory task store.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{
		CleanupInterval: time.Minute,
		Now:             time.Now,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	s := &InMemoryStore{
		entries: make(map[string]entry),
		now:     opts.Now,
	}

	if opts.CleanupInterval > 0 {
		s.janitorStop = make(chan struct{})
		s.janitorDone = make(chan struct{})
		go s.janitor(opts.CleanupInterval)
	}

	return s
}

// Get returns a clone of the session stored under sessionID, or
// core.ErrSessionNotFound if it is absent or its ttl has elapsed.
func (s *InMemoryStore) Get(ctx context.Context, sessionID string) (*core.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, core.ErrSessionNotFound
	}

	if s.expired(e) {
		// Reclaim eagerly so a dead entry does not linger until the next sweep.
		s.mu.Lock()
		if cur, ok := s.entries[sessionID]; ok && s.expired(cur) {
			delete(s.entries, sessionID)
		}
		s.mu.Unlock()
		return nil, core.ErrSessionNotFound
	}

	return e.session.Clone(), nil
}

// Put stores a clone of the session under sessionID, replacing any previous
// value and resetting the expiry clock. A ttl <= 0 stores without expiry.
func (s *InMemoryStore) Put(ctx context.Context, sessionID string, session *core.Session, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	e := entry{session: session.Clone()}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[sessionID] = e
	s.mu.Unlock()

	return nil
}

// Len returns the number of live (non-expired) sessions.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		if !s.expired(e) {
			n++
		}
	}
	return n
}

// Close stops the background janitor. Safe to call multiple times; a store
// without a janitor needs no Close but tolerates it.
func (s *InMemoryStore) Close() {
	s.closeOnce.Do(func() {
		if s.janitorStop != nil {
			close(s.janitorStop)
			<-s.janitorDone
		}
	})
}

func (s *InMemoryStore) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

func (s *InMemoryStore) janitor(interval time.Duration) {
	defer close(s.janitorDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.janitorStop:
			return
		case <-ticker.C:
			s.pruneExpired()
		}
	}
}

func (s *InMemoryStore) pruneExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
		}
	}
}
