package core

// Status classifies the normalized result of one agent invocation.
type Status string

const (
	// StatusSuccess indicates the agent returned a payload.
	StatusSuccess Status = "success"
	// StatusFailed indicates the invocation faulted (transport error, missing
	// routing target, panic) before producing a usable payload.
	StatusFailed Status = "failed"
	// StatusTimedOut indicates the agent did not respond within the bounded
	// invocation timeout; the in-flight call was cancelled.
	StatusTimedOut Status = "timed_out"
	// StatusSkipped indicates the planned invocation was never attempted.
	StatusSkipped Status = "skipped"
)

// AgentOutcome is the normalized result of one agent invocation. Exactly one
// of Payload/ErrorDetail is populated, consistent with Status: Payload iff
// StatusSuccess, ErrorDetail iff StatusFailed/StatusTimedOut.
type AgentOutcome struct {
	AgentID     string `json:"agentId"`
	Status      Status `json:"status"`
	Payload     string `json:"payload,omitempty"`
	ErrorDetail string `json:"errorDetail,omitempty"`
}

// Succeeded reports whether the invocation produced a usable payload.
func (o AgentOutcome) Succeeded() bool { return o.Status == StatusSuccess }

// SuccessOutcome builds a success outcome for the given agent and payload.
func SuccessOutcome(agentID, payload string) AgentOutcome {
	return AgentOutcome{AgentID: agentID, Status: StatusSuccess, Payload: payload}
}

// FailedOutcome builds a failed outcome carrying the underlying cause.
func FailedOutcome(agentID string, cause error) AgentOutcome {
	return AgentOutcome{AgentID: agentID, Status: StatusFailed, ErrorDetail: cause.Error()}
}

// TimedOutOutcome builds a timed-out outcome carrying the timeout detail.
func TimedOutOutcome(agentID string, cause error) AgentOutcome {
	return AgentOutcome{AgentID: agentID, Status: StatusTimedOut, ErrorDetail: cause.Error()}
}
