package mixin

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindHash
	KindFunc
)

// Value is the dynamic value held in a target's property table. Composed
// properties can be plain data or invocable Funcs.
type Value struct {
	kind ValueKind
	data any
}

// Func is a named host callable bound into a property table.
type Func struct {
	Name string
	Fn   CallFunc
}

// CallFunc is invoked with the target the property lives on.
type CallFunc func(t *Target, args []Value) (Value, error)
