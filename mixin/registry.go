package mixin

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds named providers shared across composition passes. It is
// the one piece of the package safe for concurrent use; targets and
// composition passes themselves are single-threaded by contract.
type Registry struct {
	mu     sync.RWMutex
	mixins map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{mixins: make(map[string]Provider)}
}

// Register stores a provider under name. Re-registering a name is an
// error; conflict avoidance at the property level is the provider's
// business, but the registry namespace stays unambiguous.
func (r *Registry) Register(name string, p Provider) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("mixin: registry name must be non-empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.mixins[name]; exists {
		return fmt.Errorf("mixin: %q already registered", name)
	}
	if p.name == "" {
		p.name = name
	}
	r.mixins[name] = p
	return nil
}

func (r *Registry) Lookup(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.mixins[name]
	return p, ok
}

// Names returns the registered mixin names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.mixins))
	for name := range r.mixins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds an ordered source from registered names.
func (r *Registry) Resolve(names ...string) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]Provider, 0, len(names))
	for _, name := range names {
		p, ok := r.mixins[name]
		if !ok {
			return Source{}, fmt.Errorf("mixin: unknown mixin %q", name)
		}
		items = append(items, p)
	}
	return Providers(items...), nil
}
