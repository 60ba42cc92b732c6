package mixin

import (
	"context"
	"errors"
	"testing"
)

func TestWrapInvokesOldThenNew(t *testing.T) {
	var order []string
	first := NewFunc("first", func(tgt *Target, args []Value) (Value, error) {
		order = append(order, "first")
		return NewNil(), nil
	})
	second := func(tgt *Target, args []Value) (Value, error) {
		order = append(order, "second")
		return NewString("done"), nil
	}

	target := NewTarget()
	composeOnto(t, target, Providers(
		Static(map[string]Value{"_alert": first}),
		Dynamic("layer", func(comp *Composition, tgt *Target, args Args) (map[string]Value, error) {
			prev, _ := comp.Applied("_alert")
			return map[string]Value{"_alert": Wrap("_alert", prev, NewFunc("second", second))}, nil
		}),
	))

	result, err := target.Call("_alert", nil)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if result.String() != "done" {
		t.Fatalf("expected wrapped call to return new result, got %q", result.String())
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected call order: %v", order)
	}
}

func TestWrapSkipsMissingPrevBinding(t *testing.T) {
	called := false
	wrapped := Wrap("hook", NewNil(), NewFunc("only", func(tgt *Target, args []Value) (Value, error) {
		called = true
		return NewBool(true), nil
	}))

	result, err := wrapped.Func().Fn(NewTarget(), nil)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if !called || !result.Bool() {
		t.Fatalf("new binding not invoked when prev is absent")
	}
}

func TestWrapPrevErrorShortCircuits(t *testing.T) {
	boom := errors.New("boom")
	nextCalled := false
	wrapped := Wrap("hook",
		NewFunc("failing", func(tgt *Target, args []Value) (Value, error) {
			return NewNil(), boom
		}),
		NewFunc("next", func(tgt *Target, args []Value) (Value, error) {
			nextCalled = true
			return NewNil(), nil
		}),
	)

	_, err := wrapped.Func().Fn(NewTarget(), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected prev error, got %v", err)
	}
	if nextCalled {
		t.Fatalf("next binding ran after prev failed")
	}
}

func TestWrapLayersAcrossPasses(t *testing.T) {
	var order []string
	appendHook := func(label string) Value {
		return NewFunc(label, func(tgt *Target, args []Value) (Value, error) {
			order = append(order, label)
			return NewNil(), nil
		})
	}
	layer := func(label string) Provider {
		return Dynamic(label, func(comp *Composition, tgt *Target, args Args) (map[string]Value, error) {
			prev, _ := comp.Applied("hook")
			return map[string]Value{"hook": Wrap("hook", prev, appendHook(label))}, nil
		})
	}

	target := NewTarget()
	composer := NewComposer(Config{})
	for _, label := range []string{"one", "two", "three"} {
		if err := composer.Compose(context.Background(), target, Providers(layer(label)), Args{}); err != nil {
			t.Fatalf("compose %s failed: %v", label, err)
		}
	}

	if _, err := target.Call("hook", nil); err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if len(order) != 3 || order[0] != "one" || order[1] != "two" || order[2] != "three" {
		t.Fatalf("unexpected layered order: %v", order)
	}
}
