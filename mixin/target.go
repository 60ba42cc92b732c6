package mixin

import (
	"fmt"
	"sort"
)

// Target is the object composition writes into. It owns a mutable property
// table; providers mutate it by reference and no copy is ever taken.
type Target struct {
	props    map[string]Value
	declared Source
}

// NewTarget returns an empty target.
func NewTarget() *Target {
	return &Target{props: make(map[string]Value)}
}

// NewTargetWith returns a target seeded with the given properties. The map
// is adopted, not copied.
func NewTargetWith(props map[string]Value) *Target {
	if props == nil {
		props = make(map[string]Value)
	}
	return &Target{props: props}
}

// NewDeclaredTarget returns an empty target carrying its own mixin source,
// fixed at construction and resolved once by Composer.ComposeDeclared.
func NewDeclaredTarget(src Source) *Target {
	return &Target{props: make(map[string]Value), declared: src}
}

func (t *Target) Get(name string) (Value, bool) {
	val, ok := t.props[name]
	return val, ok
}

func (t *Target) Set(name string, val Value) {
	t.props[name] = val
}

func (t *Target) Has(name string) bool {
	_, ok := t.props[name]
	return ok
}

func (t *Target) Delete(name string) {
	delete(t.props, name)
}

func (t *Target) Len() int {
	return len(t.props)
}

// Keys returns the property names in sorted order.
func (t *Target) Keys() []string {
	keys := make([]string, 0, len(t.props))
	for k := range t.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a deep copy of the property table. The target itself is
// untouched; later composition passes keep mutating the original.
func (t *Target) Snapshot() map[string]Value {
	return cloneProps(t.props)
}

// Export converts the property table to plain Go data.
func (t *Target) Export() map[string]any {
	out := make(map[string]any, len(t.props))
	for k, v := range t.props {
		out[k] = v.Export()
	}
	return out
}

// Call invokes a Func-valued property with the target as receiver.
func (t *Target) Call(name string, args []Value) (Value, error) {
	val, ok := t.props[name]
	if !ok {
		return NewNil(), fmt.Errorf("mixin: no property %q", name)
	}
	fn := val.Func()
	if fn == nil {
		return NewNil(), fmt.Errorf("mixin: property %q is not callable (%s)", name, val.Kind())
	}
	return fn.Fn(t, args)
}
