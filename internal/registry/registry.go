// Package registry wires live tree instances to external callers such as a
// command palette. The registry is owned by the host and passed by
// reference; the mutation engine never sees it.
package registry

import (
	"sort"
	"sync"

	"treeline-cli/internal/model"
	"treeline-cli/internal/state"
)

// Handle exposes one tree instance: a state accessor plus its action surface.
type Handle struct {
	State   func() model.TreeState
	Actions *state.Store
}

// Registry maps tree ids to live handles.
type Registry struct {
	mu    sync.RWMutex
	trees map[string]Handle
}

func New() *Registry {
	return &Registry{trees: map[string]Handle{}}
}

// Register adds or replaces the handle for treeID.
func (r *Registry) Register(treeID string, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trees[treeID] = h
}

// Unregister drops the handle for treeID.
func (r *Registry) Unregister(treeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.trees, treeID)
}

// Lookup returns the handle for treeID.
func (r *Registry) Lookup(treeID string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.trees[treeID]
	return h, ok
}

// IDs returns the registered tree ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.trees))
	for id := range r.trees {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
