package core

import (
	"context"
	"time"
)

// TaskStore persists session state with per-key expiry. It is the only
// shared mutable resource in the orchestration core; implementations must be
// atomic per key (a concurrent reader never observes a torn write).
//
// Expiry is owned by the store: a session whose ttl has elapsed since the
// last Put behaves as if it were never written (Get returns
// ErrSessionNotFound). The orchestrator never deletes sessions itself.
type TaskStore interface {
	// Get returns the session stored under sessionID, or ErrSessionNotFound
	// if absent or expired. Infrastructure faults are reported by wrapping
	// ErrStoreUnavailable.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Put stores the session under sessionID with the given time-to-live,
	// replacing any previous value and resetting the expiry clock.
	// A ttl <= 0 stores the session without expiry.
	Put(ctx context.Context, sessionID string, session *Session, ttl time.Duration) error
}
