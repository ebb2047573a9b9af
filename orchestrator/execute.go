package orchestrator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/homemesh/core"
)

// execute drives the plan through the invoker and returns one outcome per
// plan step, in plan order, regardless of execution mode or which call
// actually completed first.
func (o *Orchestrator) execute(ctx context.Context, plan []core.PlanStep, mode core.ExecutionMode) []core.AgentOutcome {
	if mode == core.ModeSequential {
		return o.executeSequential(ctx, plan)
	}
	return o.executeParallel(ctx, plan)
}

// executeParallel starts every invocation concurrently and joins on all of
// them. There is no short-circuiting on first failure: sibling agents' work
// is independent and should not be wasted. Fan-out width is bounded by
// MaxConcurrentInvocations.
func (o *Orchestrator) executeParallel(ctx context.Context, plan []core.PlanStep) []core.AgentOutcome {
	outcomes := make([]core.AgentOutcome, len(plan))

	g := new(errgroup.Group)
	if o.cfg.MaxConcurrentInvocations > 0 {
		g.SetLimit(o.cfg.MaxConcurrentInvocations)
	}

	for i, step := range plan {
		i, step := i, step
		g.Go(func() error {
			outcomes[i] = o.invoker.Invoke(ctx, step.AgentID, step.Payload, o.cfg.AgentTimeout)
			return nil
		})
	}

	// Invoke never returns an error; Wait is a pure join-all.
	_ = g.Wait()

	return outcomes
}

// executeSequential runs invocations one at a time in plan order. Each
// target's payload is enriched with the immediately preceding successful
// outcome; a failed or timed-out predecessor contributes nothing but does
// not halt the sequence. Only caller cancellation stops further invocations,
// marking the remainder Skipped.
func (o *Orchestrator) executeSequential(ctx context.Context, plan []core.PlanStep) []core.AgentOutcome {
	outcomes := make([]core.AgentOutcome, len(plan))

	for i, step := range plan {
		if ctx.Err() != nil {
			outcomes[i] = core.AgentOutcome{AgentID: step.AgentID, Status: core.StatusSkipped}
			continue
		}

		if i > 0 && outcomes[i-1].Succeeded() {
			step.Payload.Context = outcomes[i-1].Payload
		}

		outcomes[i] = o.invoker.Invoke(ctx, step.AgentID, step.Payload, o.cfg.AgentTimeout)
	}

	return outcomes
}
