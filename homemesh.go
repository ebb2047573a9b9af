// Package homemesh provides a high-level façade over the orchestration
// control plane (routing, execution, aggregation and durable session state)
// enabling rapid construction of multi-agent smart-home assistants. Most
// applications interact with this package by:
//  1. Creating a HomeMesh via New() (optionally overriding default in-memory services)
//  2. Registering one or more agents (descriptor + handler, or remote endpoints)
//  3. Processing conversation turns via ProcessTurn / ProcessText
//
// The façade delegates per-turn control flow to orchestrator.Orchestrator
// while keeping setup and usage ergonomics concise. All defaults are safe
// for local development and testing; production deployments typically supply
// a durable task store, a model-backed scorer and a structured logger.
package homemesh

import (
	"context"
	"errors"

	"github.com/hupe1980/homemesh/aggregator"
	"github.com/hupe1980/homemesh/core"
	"github.com/hupe1980/homemesh/executor"
	"github.com/hupe1980/homemesh/logging"
	"github.com/hupe1980/homemesh/orchestrator"
	"github.com/hupe1980/homemesh/registry"
	"github.com/hupe1980/homemesh/router"
	"github.com/hupe1980/homemesh/store"
	"github.com/hupe1980/homemesh/transport"
)

// Options configures the HomeMesh instance.
type Options struct {
	// Config carries the orchestration tunables (history bound, session ttl,
	// agent timeout, fan-out concurrency).
	Config orchestrator.Config

	// RouterOptions tune the routing policy (threshold, affinity, mode).
	RouterOptions []func(o *router.Options)

	// Services (default to in-memory implementations if not provided).
	TaskStore core.TaskStore
	Registry  core.Registry
	Transport core.Transport

	// Scorer is the routing confidence strategy (defaults to the keyword
	// scorer; see scorer/openai and scorer/anthropic for model-backed ones).
	Scorer router.Scorer

	// MergeStrategy combines successful payloads (defaults to newline join).
	MergeStrategy aggregator.MergeStrategy

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// HomeMesh is the high-level façade aggregating the orchestrator and its
// collaborating services.
type HomeMesh struct {
	opts         Options
	orchestrator *orchestrator.Orchestrator

	// populated only when the corresponding default service is in use
	localTransport *transport.LocalTransport
	staticRegistry *registry.StaticRegistry
}

// New creates a new HomeMesh instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *HomeMesh {
	opts := Options{
		Config:        orchestrator.DefaultConfig,
		Scorer:        router.NewKeywordScorer(),
		MergeStrategy: aggregator.NewTextJoin("\n"),
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	m := &HomeMesh{opts: opts}

	if opts.TaskStore == nil {
		opts.TaskStore = store.NewInMemoryStore()
	}
	if opts.Registry == nil {
		m.staticRegistry = registry.NewStaticRegistry()
		opts.Registry = m.staticRegistry
	}
	if opts.Transport == nil {
		m.localTransport = transport.NewLocalTransport()
		opts.Transport = m.localTransport
	}

	routerOpts := append([]func(o *router.Options){func(o *router.Options) {
		o.Logger = opts.Logger
	}}, opts.RouterOptions...)

	m.orchestrator = orchestrator.New(
		opts.TaskStore,
		opts.Registry,
		router.New(opts.Scorer, routerOpts...),
		executor.New(opts.Registry, opts.Transport, func(o *executor.Options) {
			o.Logger = opts.Logger
		}),
		aggregator.New(func(o *aggregator.Options) {
			o.Strategy = opts.MergeStrategy
			o.Logger = opts.Logger
		}),
		func(o *orchestrator.Options) {
			o.Config = opts.Config
			o.Logger = opts.Logger
		},
	)

	return m
}

// RegisterAgent adds an in-process agent: its descriptor goes into the
// default registry and its handler is bound to the descriptor's endpoint on
// the default local transport. Returns an error when a custom registry or
// transport was supplied; register with those directly instead.
func (m *HomeMesh) RegisterAgent(descriptor core.AgentDescriptor, handler transport.Handler) error {
	if m.staticRegistry == nil || m.localTransport == nil {
		return errors.New("RegisterAgent requires the default registry and transport")
	}
	m.staticRegistry.Register(descriptor)
	m.localTransport.Register(descriptor.Endpoint, handler)
	return nil
}

// RegisterRemoteAgent adds a remote agent descriptor to the default
// registry; its endpoint is reached through the configured transport.
func (m *HomeMesh) RegisterRemoteAgent(descriptor core.AgentDescriptor) error {
	if m.staticRegistry == nil {
		return errors.New("RegisterRemoteAgent requires the default registry")
	}
	m.staticRegistry.Register(descriptor)
	return nil
}

// ProcessTurn processes one conversation turn for the given session.
// An empty sessionID starts a new session with a generated id.
func (m *HomeMesh) ProcessTurn(ctx context.Context, sessionID string, input core.TurnInput) (*core.TurnResult, error) {
	return m.orchestrator.ProcessTurn(ctx, sessionID, input)
}

// ProcessText is a convenience wrapper for plain text turns.
func (m *HomeMesh) ProcessText(ctx context.Context, sessionID, text string) (*core.TurnResult, error) {
	return m.orchestrator.ProcessTurn(ctx, sessionID, core.TurnInput{Text: text})
}
