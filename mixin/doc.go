// Package mixin implements ordered capability composition onto mutable
// property tables. A Composer applies a list of providers to a target:
//   - Static providers contribute a fixed property mapping, applied verbatim.
//   - Dynamic providers are callables evaluated at composition time with the
//     target and the original invocation arguments, and produce a mapping
//     (or nothing). They may read the target's current bindings to compose
//     with, rather than overwrite, earlier contributions.
//
// Providers are applied in list order and the last writer wins for a
// colliding property name. Composition is not transactional: a provider
// error halts the pass and leaves earlier contributions in place.
//
// Mixin lists come either as literal provider slices or as a callable
// resolved once per pass with the target; named static mixins can also be
// declared in TOML plan files and held in a Registry.
package mixin
