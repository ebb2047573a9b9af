package aggregator

import (
	"errors"

	"github.com/hupe1980/homemesh/core"
	"github.com/hupe1980/homemesh/logging"
)

// Aggregator combines one or more agent outcomes into a single result.
// Given the same outcome sequence it always produces the same result: no
// hidden randomness, no wall-clock dependence.
type Aggregator struct {
	strategy MergeStrategy
	logger   logging.Logger
}

// Options configures an Aggregator.
type Options struct {
	// Strategy merges successful payloads. Defaults to TextJoin("\n").
	Strategy MergeStrategy

	// Logger receives per-aggregation diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// New constructs an Aggregator with optional overrides.
func New(optFns ...func(o *Options)) *Aggregator {
	opts := Options{
		Strategy: TextJoin{Separator: "\n"},
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Aggregator{strategy: opts.Strategy, logger: opts.Logger}
}

// Aggregate reduces outcomes (in plan order) into an AggregatedResult:
//
//   - every outcome succeeded: the merged payload, no warnings
//   - partial failure: best-effort payload from the successful outcomes plus
//     one warning per non-success outcome, never silently dropped
//   - total failure: a *core.AggregateError carrying every underlying
//     error detail, terminal for the turn
func (a *Aggregator) Aggregate(outcomes []core.AgentOutcome) (*core.AggregatedResult, error) {
	if len(outcomes) == 0 {
		return nil, errors.New("no outcomes to aggregate")
	}

	payloads := make([]string, 0, len(outcomes))
	var warnings []core.Warning
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			payloads = append(payloads, outcome.Payload)
			continue
		}
		warnings = append(warnings, core.Warning{
			AgentID: outcome.AgentID,
			Status:  outcome.Status,
			Detail:  outcome.ErrorDetail,
		})
	}

	if len(payloads) == 0 {
		a.logger.Warn("all %d outcomes failed", len(outcomes))
		return nil, &core.AggregateError{Outcomes: outcomes}
	}

	if len(warnings) > 0 {
		a.logger.Info("aggregated %d/%d successful outcomes", len(payloads), len(outcomes))
	}

	return &core.AggregatedResult{
		Payload:  a.strategy.Merge(payloads),
		Warnings: warnings,
	}, nil
}
