package core

import "context"

// MetadataContextID is the invocation payload metadata key carrying the
// conversation context identifier. The orchestrator sets it to the session
// id so transports that thread remote conversations can pick it up.
const MetadataContextID = "contextId"

// Transport reaches a single agent at its invocation endpoint. It is
// supplied by the collaborator that knows how to talk to a given agent
// (HTTP, JSON-RPC, in-process); the orchestration core is transport-agnostic.
//
// Implementations must honor context cancellation and deadlines: the
// execution wrapper bounds every call with a timeout and cancels the context
// when it elapses. Any fault is returned as an error; the wrapper converts
// it into a normalized outcome and never lets it propagate further.
type Transport interface {
	Call(ctx context.Context, endpoint string, payload InvocationPayload) (string, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, endpoint string, payload InvocationPayload) (string, error)

// Call invokes the wrapped function.
func (f TransportFunc) Call(ctx context.Context, endpoint string, payload InvocationPayload) (string, error) {
	return f(ctx, endpoint, payload)
}
