package core

// ExecutionMode determines how a multi-target plan is driven.
type ExecutionMode string

const (
	// ModeParallel starts all planned invocations concurrently and joins on
	// every one of them; targets are independent of each other.
	ModeParallel ExecutionMode = "parallel"
	// ModeSequential runs invocations one at a time in plan order; a later
	// target's payload may be enriched with the preceding outcome.
	ModeSequential ExecutionMode = "sequential"
)

// RoutingDecision is the router's output for one turn: a non-empty ordered
// target list and the mode to execute it in. A single-element target list is
// a plain single-agent turn; more than one element is a fan-out.
//
// Invariant: every target exists in the registry snapshot the decision was
// made against; the router fails fast rather than emitting a dangling
// reference.
type RoutingDecision struct {
	Targets []string      `json:"targets"`
	Mode    ExecutionMode `json:"mode"`
}
