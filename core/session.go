package core

import "time"

// Session is a conversational container identified by a stable id. It tracks
// an ordered, append-only history of completed turns plus the last-activity
// timestamp that drives store-side expiry.
//
// Contract:
//   - The orchestrator is the sole writer; no other component mutates a
//     session. Concurrent turn processing for the same id is serialized by
//     the orchestrator's per-session exclusion, so Session itself carries no
//     locking.
//   - History is forward-only: turns are appended on completion and never
//     mutated afterwards. Turns never hold a reference back to the session;
//     a turn is addressed by (sessionID, turnID).
//   - Clone performs deep copies of slices/maps for safe divergence.
type Session struct {
	ID           string    `json:"id"`
	History      []Turn    `json:"history"`
	Created      time.Time `json:"created"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

// NewSession creates a new empty session with the given ID.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, History: []Turn{}, Created: now, LastActiveAt: now}
}

// AppendTurn appends a completed turn to the history, evicting the oldest
// entries once the history exceeds limit (limit <= 0 means unbounded), and
// refreshes LastActiveAt.
func (s *Session) AppendTurn(turn Turn, limit int) {
	s.History = append(s.History, turn)
	if limit > 0 && len(s.History) > limit {
		s.History = s.History[len(s.History)-limit:]
	}
	s.LastActiveAt = time.Now()
}

// LastAgentID returns the identifier of the agent that handled the most
// recent turn (the first target of the latest turn with a non-empty plan).
// Returns "" for a fresh session. Used for session-affinity tie-breaking.
func (s *Session) LastAgentID() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if len(s.History[i].Plan) > 0 {
			return s.History[i].Plan[0].AgentID
		}
	}
	return ""
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	clone := &Session{ID: s.ID, History: make([]Turn, len(s.History)), Created: s.Created, LastActiveAt: s.LastActiveAt}
	for i, turn := range s.History {
		clone.History[i] = turn.Clone()
	}
	return clone
}

// TurnInput carries the user's message text plus arbitrary caller metadata.
// Metadata is opaque to the orchestration core and is forwarded to agents
// unchanged.
type TurnInput struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// InvocationPayload is the per-target input handed to the agent transport.
// Context carries enrichment from the immediately preceding outcome when the
// plan executes sequentially; it is empty in parallel mode.
type InvocationPayload struct {
	Text     string         `json:"text"`
	Context  string         `json:"context,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PlanStep is one planned agent invocation: which agent, with what payload.
type PlanStep struct {
	AgentID string            `json:"agentId"`
	Payload InvocationPayload `json:"payload"`
}

// Turn records one request/response cycle within a session: the input, the
// plan the router produced, the normalized outcome of every planned
// invocation (in plan order), and the aggregated result or terminal error.
//
// Invariant: len(Outcomes) == len(Plan) for every executed turn, regardless
// of execution mode or completion order.
type Turn struct {
	ID       string            `json:"id"`
	Input    TurnInput         `json:"input"`
	Plan     []PlanStep        `json:"plan,omitempty"`
	Outcomes []AgentOutcome    `json:"outcomes,omitempty"`
	Result   *AggregatedResult `json:"result,omitempty"`
	Error    string            `json:"error,omitempty"`
	Created  time.Time         `json:"created"`
}

// Failed reports whether the turn ended in the terminal Failed state.
func (t Turn) Failed() bool { return t.Error != "" }

// Clone returns a deep copy of the turn.
func (t Turn) Clone() Turn {
	clone := t
	clone.Input.Metadata = cloneMetadata(t.Input.Metadata)
	if t.Plan != nil {
		clone.Plan = make([]PlanStep, len(t.Plan))
		for i, step := range t.Plan {
			clone.Plan[i] = step
			clone.Plan[i].Payload.Metadata = cloneMetadata(step.Payload.Metadata)
		}
	}
	if t.Outcomes != nil {
		clone.Outcomes = make([]AgentOutcome, len(t.Outcomes))
		copy(clone.Outcomes, t.Outcomes)
	}
	if t.Result != nil {
		result := t.Result.Clone()
		clone.Result = &result
	}
	return clone
}

func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	clone := make(map[string]any, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}
