package testutil

import (
	"github.com/hupe1980/homemesh/core"
)

// SessionBuilder helps construct sessions with fluent chaining for tests.
// Example:
//
//	sess := NewSessionBuilder("sess-1").Turn(SuccessTurn("light-agent", "on", "done")).Build()
type SessionBuilder struct {
	id    string
	turns []core.Turn
}

// NewSessionBuilder creates a new builder for a session with the given id.
// Use chainable methods (Turn, Turns) then call Build.
func NewSessionBuilder(id string) *SessionBuilder {
	return &SessionBuilder{id: id}
}

// Turn appends a single turn to the session history (chainable).
func (b *SessionBuilder) Turn(t core.Turn) *SessionBuilder {
	b.turns = append(b.turns, t)
	return b
}

// Turns appends multiple turns to the session history (chainable).
func (b *SessionBuilder) Turns(ts ...core.Turn) *SessionBuilder {
	b.turns = append(b.turns, ts...)
	return b
}

// Build returns a *core.Session with pre-populated history.
func (b *SessionBuilder) Build() *core.Session {
	s := core.NewSession(b.id)
	s.History = append(s.History, b.turns...)
	return s
}
