// Package registry provides Agent Registry implementations.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/homemesh/core"
)

// StaticRegistry is a core.Registry backed by a fixed descriptor set. It is
// read-mostly: descriptors are supplied up front (or added before serving
// traffic) and every List call returns one consistent, lexicographically
// ordered snapshot.
type StaticRegistry struct {
	mu     sync.RWMutex
	agents map[string]core.AgentDescriptor
}

// NewStaticRegistry constructs a registry holding the given descriptors.
// A descriptor with a duplicate ID replaces the earlier one.
func NewStaticRegistry(descriptors ...core.AgentDescriptor) *StaticRegistry {
	r := &StaticRegistry{agents: make(map[string]core.AgentDescriptor, len(descriptors))}
	for _, d := range descriptors {
		r.agents[d.ID] = d
	}
	return r
}

// Register adds or replaces a descriptor. Intended for setup, not for
// mutation while turns are in flight.
func (r *StaticRegistry) Register(d core.AgentDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[d.ID] = d
}

// Lookup returns the descriptor for agentID or core.ErrAgentNotFound.
func (r *StaticRegistry) Lookup(agentID string) (core.AgentDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.agents[agentID]
	if !ok {
		return core.AgentDescriptor{}, fmt.Errorf("%w: %s", core.ErrAgentNotFound, agentID)
	}
	return d, nil
}

// List returns all descriptors sorted by ID. The slice is a defensive copy
// representing one consistent registry view.
func (r *StaticRegistry) List() []core.AgentDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptors := make([]core.AgentDescriptor, 0, len(r.agents))
	for _, d := range r.agents {
		descriptors = append(descriptors, d)
	}
	sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].ID < descriptors[j].ID })
	return descriptors
}
