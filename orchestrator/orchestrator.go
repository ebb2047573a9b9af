// Package orchestrator implements the per-turn control loop: it loads or
// creates session state, asks the router for a plan, drives the execution
// wrapper per target (parallel or sequential), aggregates the outcomes and
// persists the updated session with its inactivity ttl.
//
// A turn moves through Loading → Routing → Executing → Aggregating →
// Persisting → Completed, with Failed reachable from every step. Failure is
// always scoped to one turn; nothing here is fatal to the process.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/homemesh/core"
	"github.com/hupe1980/homemesh/internal/util"
	"github.com/hupe1980/homemesh/logging"
)

// Router produces the plan for one turn. Satisfied by *router.Router.
type Router interface {
	Route(input core.TurnInput, history []core.Turn, agents []core.AgentDescriptor) (core.RoutingDecision, error)
}

// Invoker drives one agent invocation. Satisfied by *executor.Executor.
type Invoker interface {
	Invoke(ctx context.Context, agentID string, payload core.InvocationPayload, timeout time.Duration) core.AgentOutcome
}

// Aggregator reduces a turn's outcomes. Satisfied by *aggregator.Aggregator.
type Aggregator interface {
	Aggregate(outcomes []core.AgentOutcome) (*core.AggregatedResult, error)
}

// Config defines tuning parameters for turn processing.
type Config struct {
	// HistoryLimit bounds the session history; oldest turns are evicted
	// first. 0 = unbounded.
	HistoryLimit int

	// SessionTTL is the inactivity window after which the store expires a
	// session.
	SessionTTL time.Duration

	// AgentTimeout bounds every single agent invocation.
	AgentTimeout time.Duration

	// MaxConcurrentInvocations limits how many agent invocations of one
	// parallel plan run simultaneously. 0 = unlimited.
	MaxConcurrentInvocations int
}

// DefaultConfig provides production-ready default configuration values.
var DefaultConfig = Config{
	HistoryLimit:             20,
	SessionTTL:               24 * time.Hour,
	AgentTimeout:             30 * time.Second,
	MaxConcurrentInvocations: 10,
}

// Options configures an Orchestrator.
type Options struct {
	Config Config

	// Logger receives per-turn diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Orchestrator ties store, registry, router, executor and aggregator
// together per turn. Turns for different sessions run fully concurrently;
// turns for the same session are serialized through a per-session exclusion
// scope held from Loading to Persisting. Public methods are safe for
// concurrent use.
type Orchestrator struct {
	store      core.TaskStore
	registry   core.Registry
	router     Router
	invoker    Invoker
	aggregator Aggregator

	cfg    Config
	logger logging.Logger
	locks  *sessionLocks
}

// New constructs an Orchestrator with optional overrides.
func New(store core.TaskStore, registry core.Registry, router Router, invoker Invoker, aggregator Aggregator, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Orchestrator{
		store:      store,
		registry:   registry,
		router:     router,
		invoker:    invoker,
		aggregator: aggregator,
		cfg:        opts.Config,
		logger:     opts.Logger,
		locks:      newSessionLocks(),
	}
}

// ProcessTurn processes one user turn end to end and returns the aggregated
// response plus any partial-failure warnings. An empty sessionID starts a
// fresh session with a generated id (readable from the result).
//
// Terminal errors: core.ErrNoMatchingAgent, *core.AggregateError,
// core.ErrCancelled and core.ErrStoreUnavailable during loading. A store
// fault during persisting degrades to a warning instead; the computed answer
// is still returned.
func (o *Orchestrator) ProcessTurn(ctx context.Context, sessionID string, input core.TurnInput) (*core.TurnResult, error) {
	if sessionID == "" {
		sessionID = util.NewID()
	}

	if err := o.locks.acquire(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrCancelled, err)
	}
	defer o.locks.release(sessionID)

	// Loading
	session, err := o.store.Get(ctx, sessionID)
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		session = core.NewSession(sessionID)
		o.logger.Debug("created new session %s", sessionID)
	case err != nil:
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	turn := core.Turn{ID: util.NewID(), Input: input, Created: time.Now()}
	o.logger.Info("processing turn %s session %s", turn.ID, sessionID)

	// Routing
	decision, err := o.router.Route(input, session.History, o.registry.List())
	if err != nil {
		return nil, o.failTurn(ctx, session, turn, fmt.Errorf("routing failed: %w", err))
	}
	turn.Plan = o.buildPlan(sessionID, input, decision)
	o.logger.Debug("turn %s planned %d target(s) mode=%s", turn.ID, len(turn.Plan), decision.Mode)

	// Executing
	turn.Outcomes = o.execute(ctx, turn.Plan, decision.Mode)
	if ctx.Err() != nil {
		return nil, o.failTurn(ctx, session, turn, fmt.Errorf("%w: %v", core.ErrCancelled, ctx.Err()))
	}

	// Aggregating
	result, err := o.aggregator.Aggregate(turn.Outcomes)
	if err != nil {
		return nil, o.failTurn(ctx, session, turn, err)
	}
	turn.Result = result

	// Persisting
	warnings := make([]core.Warning, 0, len(result.Warnings)+1)
	warnings = append(warnings, result.Warnings...)
	session.AppendTurn(turn, o.cfg.HistoryLimit)
	if err := o.persist(ctx, session); err != nil {
		// The answer is already computed; a persist fault degrades to a
		// warning rather than discarding it. The session may not resume
		// correctly on the next turn.
		o.logger.Warn("failed to persist session %s: %v", sessionID, err)
		warnings = append(warnings, core.Warning{Status: core.StatusFailed, Detail: fmt.Sprintf("session not persisted: %v", err)})
	}

	return &core.TurnResult{
		SessionID: sessionID,
		TurnID:    turn.ID,
		Payload:   result.Payload,
		Warnings:  warnings,
	}, nil
}

// buildPlan expands the routing decision into concrete plan steps, threading
// the session id through the payload metadata for transports that maintain
// remote conversation context.
func (o *Orchestrator) buildPlan(sessionID string, input core.TurnInput, decision core.RoutingDecision) []core.PlanStep {
	plan := make([]core.PlanStep, len(decision.Targets))
	for i, target := range decision.Targets {
		metadata := make(map[string]any, len(input.Metadata)+1)
		for k, v := range input.Metadata {
			metadata[k] = v
		}
		metadata[core.MetadataContextID] = sessionID
		plan[i] = core.PlanStep{
			AgentID: target,
			Payload: core.InvocationPayload{Text: input.Text, Metadata: metadata},
		}
	}
	return plan
}

// failTurn records the turn as Failed in the session history, persists the
// session best-effort and returns the terminal cause. History consistency is
// worth more than the persist round-trip: even a cancelled or unroutable
// turn must leave a trace.
func (o *Orchestrator) failTurn(ctx context.Context, session *core.Session, turn core.Turn, cause error) error {
	turn.Error = cause.Error()
	session.AppendTurn(turn, o.cfg.HistoryLimit)
	if err := o.persist(ctx, session); err != nil {
		o.logger.Warn("failed to persist failed turn %s: %v", turn.ID, err)
	}
	o.logger.Info("turn %s failed: %v", turn.ID, cause)
	return cause
}

// persist writes the session back with the inactivity ttl. The write is
// detached from the turn's cancellation: an answer (or failure record) that
// was already computed should still reach the store.
func (o *Orchestrator) persist(ctx context.Context, session *core.Session) error {
	return o.store.Put(context.WithoutCancel(ctx), session.ID, session, o.cfg.SessionTTL)
}
