package scaffold

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps scaffold type names to definitions. It is filled once at
// startup and read afterwards; methods are safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register stores def under its type. A later registration of the same
// type replaces the earlier one.
func (r *Registry) Register(def *Definition) error {
	if def == nil || def.Type == "" {
		return fmt.Errorf("registering scaffold: type is required")
	}
	if def.Type == ListAction {
		return fmt.Errorf("registering scaffold: %q is reserved", ListAction)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Type] = def
	return nil
}

// Lookup returns the definition registered for typeName.
func (r *Registry) Lookup(typeName string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[typeName]
	return def, ok
}

// List returns every definition sorted by type.
func (r *Registry) List() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Definition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Len returns the number of registered scaffolds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
