package orchestrator

import (
	"context"
	"sync"
)

// sessionLocks serializes turn processing per session id. Acquisition is
// cancellation-aware: a caller waiting for a busy session gives up as soon
// as its context is done, so a slow turn never wedges a queued one past its
// caller's patience.
//
// Lock entries are reference counted and removed once the last interested
// turn releases, keeping the map bounded by in-flight sessions rather than
// all sessions ever seen.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	slot chan struct{}
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// acquire blocks until the session's slot is free or ctx is done.
func (s *sessionLocks) acquire(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sessionLock{slot: make(chan struct{}, 1)}
		s.locks[sessionID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	select {
	case lock.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		s.unref(sessionID, lock)
		return ctx.Err()
	}
}

// release frees the session's slot. Must be called exactly once per
// successful acquire, on every exit path.
func (s *sessionLocks) release(sessionID string) {
	s.mu.Lock()
	lock := s.locks[sessionID]
	s.mu.Unlock()

	<-lock.slot
	s.unref(sessionID, lock)
}

func (s *sessionLocks) unref(sessionID string, lock *sessionLock) {
	s.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.locks, sessionID)
	}
	s.mu.Unlock()
}
