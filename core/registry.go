package core

// AgentDescriptor describes one registered agent: its stable identifier, a
// human-readable capability summary used as classification input by the
// router, an optional skill list (mirroring agent-card skills), and the
// invocation endpoint handed opaquely to the transport.
type AgentDescriptor struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Skills      []string `json:"skills,omitempty"`
	Endpoint    string   `json:"endpoint"`
}

// Registry is a read-only lookup from agent identifier to its descriptor.
// It is supplied externally; the orchestration core only queries it.
//
// Implementations must provide snapshot semantics: the slice returned by
// List reflects one consistent registry view and is safe for the caller to
// retain (defensive copy). List order must be deterministic.
type Registry interface {
	// Lookup returns the descriptor for agentID or ErrAgentNotFound.
	Lookup(agentID string) (AgentDescriptor, error)

	// List returns all registered descriptors in stable order.
	List() []AgentDescriptor
}
