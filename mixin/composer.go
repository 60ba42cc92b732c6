package mixin

import (
	"context"
	"fmt"
)

// Scheduler runs side effects a dynamic provider defers past the composition
// pass. Scheduled work is fire-and-forget: the composer never tracks,
// cancels, or awaits it.
type Scheduler interface {
	Schedule(fn func())
}

type goSchedule struct{}

func (goSchedule) Schedule(fn func()) { go fn() }

// Config controls composition bounds and hooks.
type Config struct {
	// ProviderQuota caps how many providers one pass may apply.
	ProviderQuota int
	// Scheduler receives deferred side effects. Defaults to spawning a
	// goroutine per callback.
	Scheduler Scheduler
}

const defaultProviderQuota = 256

// Composer applies mixin lists onto targets. It is stateless between
// passes; the only evolving state is each target's property table.
type Composer struct {
	config Config
}

// NewComposer constructs a Composer with sane defaults.
func NewComposer(cfg Config) *Composer {
	if cfg.ProviderQuota <= 0 {
		cfg.ProviderQuota = defaultProviderQuota
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = goSchedule{}
	}
	return &Composer{config: cfg}
}

// Composition is the per-pass context handed to dynamic providers.
type Composition struct {
	ctx      context.Context
	composer *Composer
	target   *Target
}

func (c *Composition) Context() context.Context { return c.ctx }

// Defer hands fn to the configured scheduler. It runs outside the
// composition pass, independent of whether the pass completes.
func (c *Composition) Defer(fn func()) {
	if fn == nil {
		return
	}
	c.composer.config.Scheduler.Schedule(fn)
}

// Applied returns the target's current binding for name, letting a dynamic
// provider compose with an earlier contribution instead of clobbering it.
func (c *Composition) Applied(name string) (Value, bool) {
	return c.target.Get(name)
}

// Compose resolves src and applies its providers to target in list order.
// A callable source is resolved exactly once, with the target. Static
// providers apply their mapping verbatim; dynamic providers are invoked
// with the composition context, the target, and args, and apply whatever
// mapping they return. A nil mapping is a silent no-op. The last writer
// wins for colliding property names.
//
// A provider error halts the pass immediately: earlier contributions stay
// applied, later providers never run.
func (c *Composer) Compose(ctx context.Context, target *Target, src Source, args Args) error {
	if target == nil {
		return fmt.Errorf("mixin: compose requires a target")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	providers := src.providers(target)
	if len(providers) == 0 {
		return nil
	}

	comp := &Composition{ctx: ctx, composer: c, target: target}
	for i, p := range providers {
		if i >= c.config.ProviderQuota {
			return &CompositionError{
				Provider: p.name,
				Index:    i,
				cause:    fmt.Errorf("%w (%d)", errProviderQuota, c.config.ProviderQuota),
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		props := p.props
		if p.kind == providerDynamic {
			produced, err := p.dynamic(comp, target, args)
			if err != nil {
				return &CompositionError{Provider: p.name, Index: i, cause: err}
			}
			props = produced
		}
		if len(props) == 0 {
			continue
		}
		mergeProps(target.props, props)
	}
	return nil
}

// ComposeDeclared composes the mixin source the target was constructed
// with. A target without a declared source is left unchanged.
func (c *Composer) ComposeDeclared(ctx context.Context, target *Target, args Args) error {
	if target == nil {
		return fmt.Errorf("mixin: compose requires a target")
	}
	if target.declared.empty() {
		return nil
	}
	return c.Compose(ctx, target, target.declared, args)
}
