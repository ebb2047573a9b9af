// Package transport provides reference implementations of the agent
// transport contract: an in-process transport for tests and embedded agents,
// and a JSON-RPC client for remote agents speaking the message/send
// protocol.
package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/homemesh/core"
)

// Handler processes one invocation for an endpoint registered on a
// LocalTransport.
type Handler func(ctx context.Context, payload core.InvocationPayload) (string, error)

// LocalTransport dispatches invocations to in-process handlers keyed by
// endpoint. It is the default transport of the façade and the workhorse of
// tests: agents are plain functions, no network involved.
type LocalTransport struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewLocalTransport constructs an empty in-process transport.
func NewLocalTransport() *LocalTransport {
	return &LocalTransport{handlers: make(map[string]Handler)}
}

// Register binds a handler to an endpoint, replacing any previous binding.
func (t *LocalTransport) Register(endpoint string, handler Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[endpoint] = handler
}

// Call implements core.Transport. It honors context cancellation even when
// the handler itself ignores it.
func (t *LocalTransport) Call(ctx context.Context, endpoint string, payload core.InvocationPayload) (string, error) {
	t.mu.RLock()
	handler, ok := t.handlers[endpoint]
	t.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("no handler registered for endpoint %q", endpoint)
	}

	type reply struct {
		payload string
		err     error
	}
	done := make(chan reply, 1)
	go func() {
		p, err := handler(ctx, payload)
		done <- reply{payload: p, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.payload, r.err
	}
}
