// Package router decides which agent(s) should handle a turn. The decision
// is a pure, deterministic function of the turn input, the session history
// and one consistent registry snapshot, which keeps it unit-testable without
// network access.
package router

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hupe1980/homemesh/core"
	"github.com/hupe1980/homemesh/logging"
)

// Scorer rates how confidently an agent's capability summary matches an
// input. Implementations must be deterministic for identical arguments.
// Returned confidences are compared against the router's threshold, so they
// should live on a 0..1 scale.
type Scorer interface {
	Score(input string, descriptor core.AgentDescriptor) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(input string, descriptor core.AgentDescriptor) float64

// Score invokes the wrapped function.
func (f ScorerFunc) Score(input string, descriptor core.AgentDescriptor) float64 {
	return f(input, descriptor)
}

// ModePolicy chooses the execution mode for a multi-target plan.
type ModePolicy func(input string, targets []string) core.ExecutionMode

// DefaultModePolicy picks Sequential when the input chains its requests with
// an ordering connective, Parallel otherwise. Deliberately a heuristic;
// callers with richer intent signals supply their own policy.
func DefaultModePolicy(input string, _ []string) core.ExecutionMode {
	lowered := " " + strings.ToLower(input) + " "
	for _, connective := range []string{" then ", " after that ", " afterwards "} {
		if strings.Contains(lowered, connective) {
			return core.ModeSequential
		}
	}
	return core.ModeParallel
}

// Options configures a Router.
type Options struct {
	// Threshold is the minimum confidence an agent must reach to be planned.
	Threshold float64

	// AffinityBoost is added to the score of the agent that handled the most
	// recent turn, preserving conversational continuity for follow-ups.
	// Applied only when the agent already scored above zero.
	AffinityBoost float64

	// MaxTargets caps the fan-out width of a compound request. 0 = no cap.
	MaxTargets int

	// ModePolicy picks Parallel vs Sequential for multi-target plans.
	ModePolicy ModePolicy

	// Logger receives per-decision diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Router produces exactly one RoutingDecision per turn, or fails the turn
// outright with core.ErrNoMatchingAgent. It performs no I/O; the registry
// snapshot is handed in by the caller.
type Router struct {
	scorer Scorer
	opts   Options
}

// New constructs a Router around the given scoring strategy.
func New(scorer Scorer, optFns ...func(o *Options)) *Router {
	opts := Options{
		Threshold:     0.3,
		AffinityBoost: 0.1,
		MaxTargets:    3,
		ModePolicy:    DefaultModePolicy,
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Router{scorer: scorer, opts: opts}
}

type scoredAgent struct {
	id    string
	score float64
}

// Route scores every agent in the snapshot against the input, keeps those
// above the confidence threshold and orders them by descending confidence.
// Ties prefer the session-affine agent, then stable lexicographic order on
// agent id. An empty candidate set is terminal for the turn.
func (r *Router) Route(input core.TurnInput, history []core.Turn, agents []core.AgentDescriptor) (core.RoutingDecision, error) {
	if len(agents) == 0 {
		return core.RoutingDecision{}, fmt.Errorf("%w: registry snapshot is empty", core.ErrNoMatchingAgent)
	}

	lastAgent := lastAgentID(history)

	candidates := make([]scoredAgent, 0, len(agents))
	for _, descriptor := range agents {
		score := r.scorer.Score(input.Text, descriptor)
		if descriptor.ID == lastAgent && score > 0 {
			score += r.opts.AffinityBoost
		}
		r.opts.Logger.Debug("scored agent %s at %.3f", descriptor.ID, score)
		if score >= r.opts.Threshold {
			candidates = append(candidates, scoredAgent{id: descriptor.ID, score: score})
		}
	}

	if len(candidates) == 0 {
		return core.RoutingDecision{}, fmt.Errorf("%w: no agent cleared confidence threshold %.2f", core.ErrNoMatchingAgent, r.opts.Threshold)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !scoresEqual(a.score, b.score) {
			return a.score > b.score
		}
		if a.id == lastAgent {
			return true
		}
		if b.id == lastAgent {
			return false
		}
		return a.id < b.id
	})

	if r.opts.MaxTargets > 0 && len(candidates) > r.opts.MaxTargets {
		candidates = candidates[:r.opts.MaxTargets]
	}

	targets := make([]string, len(candidates))
	for i, c := range candidates {
		targets[i] = c.id
	}

	mode := core.ModeSequential
	if len(targets) > 1 {
		mode = r.opts.ModePolicy(input.Text, targets)
	}

	return core.RoutingDecision{Targets: targets, Mode: mode}, nil
}

func lastAgentID(history []core.Turn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if len(history[i].Plan) > 0 {
			return history[i].Plan[0].AgentID
		}
	}
	return ""
}

func scoresEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
