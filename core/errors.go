package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionNotFound is returned by a TaskStore when no live session
	// exists under the requested id (absent or expired).
	ErrSessionNotFound = errors.New("session not found")

	// ErrAgentNotFound is returned by a Registry lookup for an unknown id.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrRoutingTargetMissing indicates a plan referenced an agent that is
	// absent from the registry at execution time. This is a defect in the
	// plan and is surfaced in the outcome, not retried.
	ErrRoutingTargetMissing = errors.New("routing target missing from registry")

	// ErrNoMatchingAgent indicates no agent cleared the router's confidence
	// threshold. Terminal for the turn; no execution is attempted.
	ErrNoMatchingAgent = errors.New("no matching agent")

	// ErrAgentTimedOut indicates an agent did not respond within the bounded
	// invocation timeout.
	ErrAgentTimedOut = errors.New("agent invocation timed out")

	// ErrStoreUnavailable indicates the task store could not serve a request.
	// Terminal during loading; degrades to a warning during persisting.
	ErrStoreUnavailable = errors.New("task store unavailable")

	// ErrCancelled indicates the caller cancelled the turn in progress.
	ErrCancelled = errors.New("turn cancelled")
)

// AggregateError is the terminal error produced when every outcome of a plan
// is Failed or TimedOut. It carries all underlying error details so the
// caller can report them verbatim.
type AggregateError struct {
	Outcomes []AgentOutcome
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	details := make([]string, 0, len(e.Outcomes))
	for _, outcome := range e.Outcomes {
		details = append(details, fmt.Sprintf("%s: %s (%s)", outcome.AgentID, outcome.ErrorDetail, outcome.Status))
	}
	return fmt.Sprintf("all %d agent invocations failed: %s", len(e.Outcomes), strings.Join(details, "; "))
}
