// Package executor provides the agent execution wrapper: it invokes exactly
// one agent with a bounded timeout and guarantees the caller always receives
// a normalized outcome, never an unhandled fault.
package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/homemesh/core"
	"github.com/hupe1980/homemesh/logging"
)

// Executor wraps single-agent invocations. It holds no state between
// invocations; all its methods are safe for concurrent use.
//
// Retry policy, if any, belongs to the orchestrator's plan-level decisions,
// not here: a timed-out or failed call is reported once and never retried by
// the wrapper itself.
type Executor struct {
	registry  core.Registry
	transport core.Transport
	logger    logging.Logger
}

// Options configures an Executor.
type Options struct {
	// Logger receives per-invocation diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// New constructs an Executor bound to a registry and transport.
func New(registry core.Registry, transport core.Transport, optFns ...func(o *Options)) *Executor {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Executor{registry: registry, transport: transport, logger: opts.Logger}
}

// Invoke calls the agent identified by agentID with the given payload and
// timeout, returning a normalized outcome:
//
//   - missing descriptor → Failed wrapping core.ErrRoutingTargetMissing
//     (a defect in the plan, surfaced rather than retried)
//   - transport fault or panic → Failed with the underlying cause
//   - no response within timeout → TimedOut; the in-flight call's context
//     is cancelled so the transport can abandon it
//   - caller cancellation → Failed wrapping core.ErrCancelled
//
// A timeout <= 0 leaves the call bounded only by the caller's context.
func (e *Executor) Invoke(ctx context.Context, agentID string, payload core.InvocationPayload, timeout time.Duration) core.AgentOutcome {
	descriptor, err := e.registry.Lookup(agentID)
	if err != nil {
		e.logger.Warn("invoke aborted: agent %s not in registry", agentID)
		return core.FailedOutcome(agentID, fmt.Errorf("%w: %s", core.ErrRoutingTargetMissing, agentID))
	}

	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := e.call(callCtx, descriptor.Endpoint, payload)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		e.logger.Debug("agent %s succeeded in %s", agentID, elapsed)
		return core.SuccessOutcome(agentID, result)
	case errors.Is(err, context.DeadlineExceeded):
		e.logger.Warn("agent %s timed out after %s", agentID, elapsed)
		return core.TimedOutOutcome(agentID, fmt.Errorf("%w after %s: %v", core.ErrAgentTimedOut, timeout, err))
	case errors.Is(err, context.Canceled):
		e.logger.Debug("agent %s invocation cancelled", agentID)
		return core.FailedOutcome(agentID, fmt.Errorf("%w: %v", core.ErrCancelled, err))
	default:
		e.logger.Warn("agent %s failed: %v", agentID, err)
		return core.FailedOutcome(agentID, err)
	}
}

// call shields the caller from transport panics; a panicking transport is
// reported as an ordinary failure so sibling invocations are never aborted.
func (e *Executor) call(ctx context.Context, endpoint string, payload core.InvocationPayload) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transport panic: %v", r)
		}
	}()

	return e.transport.Call(ctx, endpoint, payload)
}
