// Package core provides the foundational domain types and contracts used by
// HomeMesh. It defines the core abstractions for:
//
//   - Sessions (multi-turn conversational containers with bounded history)
//   - Turns (one routed request/response cycle and its execution record)
//   - AgentOutcomes (normalized per-agent invocation results)
//   - RoutingDecisions (the router's chosen targets and execution mode)
//   - Pluggable contracts for the task store, agent registry and transport
//
// The package intentionally keeps implementation concerns (persistence,
// orchestration, concrete transports) out of scope, exposing small interfaces
// to enable custom backends and extensions.
package core
