package mixin

type providerKind int

const (
	providerStatic providerKind = iota
	providerDynamic
)

// Args is the opaque invocation bundle forwarded to dynamic providers,
// typically the original construction arguments of the target.
type Args struct {
	Positional []Value
	Keywords   map[string]Value
}

// ProviderFunc produces a property mapping for the given target. The target
// is passed explicitly; there is no implicit receiver. A nil mapping is a
// valid no-contribution result, any side effects performed against the
// target stand regardless.
type ProviderFunc func(comp *Composition, target *Target, args Args) (map[string]Value, error)

// Provider is one unit of reusable capability: either a fixed property
// mapping or a callable evaluated at composition time.
type Provider struct {
	kind    providerKind
	name    string
	props   map[string]Value
	dynamic ProviderFunc
}

// Static returns a provider applying the mapping verbatim.
func Static(props map[string]Value) Provider {
	return Provider{kind: providerStatic, props: props}
}

// NamedStatic is Static with a name carried into composition errors and
// plan listings.
func NamedStatic(name string, props map[string]Value) Provider {
	return Provider{kind: providerStatic, name: name, props: props}
}

// Dynamic returns a provider whose mapping is produced by fn at composition
// time.
func Dynamic(name string, fn ProviderFunc) Provider {
	return Provider{kind: providerDynamic, name: name, dynamic: fn}
}

func (p Provider) Name() string { return p.name }

// Source is an ordered mixin list: either a literal provider slice or a
// callable resolved once per composition pass with the target.
type Source struct {
	items   []Provider
	resolve func(*Target) []Provider
}

// Providers returns a literal source.
func Providers(items ...Provider) Source {
	return Source{items: items}
}

// SourceFunc returns a source resolved by calling fn with the target.
func SourceFunc(fn func(*Target) []Provider) Source {
	return Source{resolve: fn}
}

func (s Source) providers(target *Target) []Provider {
	if s.resolve != nil {
		return s.resolve(target)
	}
	return s.items
}

func (s Source) empty() bool {
	return s.resolve == nil && len(s.items) == 0
}
