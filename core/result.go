package core

// Warning records a non-success outcome (or a degraded persist) that was
// absorbed into an otherwise usable result. Warnings are never silently
// dropped; a partial answer is more useful to the end user than none, but
// the caller must be able to see what was lost.
type Warning struct {
	// AgentID identifies the agent the warning originates from; empty for
	// warnings raised by the orchestrator itself (e.g. a failed persist).
	AgentID string `json:"agentId,omitempty"`
	Status  Status `json:"status"`
	Detail  string `json:"detail"`
}

// AggregatedResult is the aggregator's reduction of one turn's outcomes:
// the merged payload of all successful invocations plus one warning per
// non-success outcome.
type AggregatedResult struct {
	Payload  string    `json:"payload"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Clone returns a deep copy of the result.
func (r AggregatedResult) Clone() AggregatedResult {
	clone := r
	if r.Warnings != nil {
		clone.Warnings = make([]Warning, len(r.Warnings))
		copy(clone.Warnings, r.Warnings)
	}
	return clone
}

// TurnResult is what ProcessTurn hands back to the inbound protocol layer:
// the aggregated payload plus any partial-failure or degraded-persist
// warnings. Terminal errors are returned separately as Go errors.
type TurnResult struct {
	SessionID string    `json:"sessionId"`
	TurnID    string    `json:"turnId"`
	Payload   string    `json:"payload"`
	Warnings  []Warning `json:"warnings,omitempty"`
}
