package mixin

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// Plan is a declarative mixin list loaded from a TOML file:
//
//	[mixin.audit]
//	order = 1
//	[mixin.audit.props]
//	label = "audited"
//
// Each table under [mixin] becomes a named static provider; order breaks
// application ties, with names as the secondary sort so a plan always
// resolves deterministically.
type Plan struct {
	mixins []PlanMixin
}

// PlanMixin is one named static mixin from a plan file.
type PlanMixin struct {
	Name  string
	Order int
	Props map[string]Value
}

type planFile struct {
	Mixins map[string]planMixin `toml:"mixin"`
}

type planMixin struct {
	Order int            `toml:"order"`
	Props map[string]any `toml:"props"`
}

// LoadPlan reads and parses a TOML plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mixin: plan load failed (%s): %w", path, err)
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return nil, fmt.Errorf("mixin: plan load failed (%s): %w", path, err)
	}
	return plan, nil
}

// ParsePlan parses TOML plan data.
func ParsePlan(data []byte) (*Plan, error) {
	var file planFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("plan parse failed: %w", err)
	}

	mixins := make([]PlanMixin, 0, len(file.Mixins))
	for name, raw := range file.Mixins {
		props := make(map[string]Value, len(raw.Props))
		for key, item := range raw.Props {
			val, err := tomlValueToValue(item)
			if err != nil {
				return nil, fmt.Errorf("plan mixin %s prop %s: %w", name, key, err)
			}
			props[key] = val
		}
		mixins = append(mixins, PlanMixin{Name: name, Order: raw.Order, Props: props})
	}
	sort.Slice(mixins, func(i, j int) bool {
		if mixins[i].Order != mixins[j].Order {
			return mixins[i].Order < mixins[j].Order
		}
		return mixins[i].Name < mixins[j].Name
	})
	return &Plan{mixins: mixins}, nil
}

// Mixins returns the plan's mixins in application order.
func (p *Plan) Mixins() []PlanMixin {
	return p.mixins
}

// Names returns the mixin names in application order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.mixins))
	for i, m := range p.mixins {
		names[i] = m.Name
	}
	return names
}

// Source returns the plan as an ordered literal mixin source.
func (p *Plan) Source() Source {
	items := make([]Provider, len(p.mixins))
	for i, m := range p.mixins {
		items[i] = NamedStatic(m.Name, m.Props)
	}
	return Providers(items...)
}

// RegisterAll adds every plan mixin to the registry.
func (p *Plan) RegisterAll(r *Registry) error {
	for _, m := range p.mixins {
		if err := r.Register(m.Name, NamedStatic(m.Name, m.Props)); err != nil {
			return err
		}
	}
	return nil
}

func tomlValueToValue(val any) (Value, error) {
	switch v := val.(type) {
	case nil:
		return NewNil(), nil
	case bool:
		return NewBool(v), nil
	case string:
		return NewString(v), nil
	case int64:
		return NewInt(v), nil
	case int:
		return NewInt(int64(v)), nil
	case float64:
		return NewFloat(v), nil
	case []any:
		arr := make([]Value, len(v))
		for i, item := range v {
			converted, err := tomlValueToValue(item)
			if err != nil {
				return NewNil(), err
			}
			arr[i] = converted
		}
		return NewArray(arr), nil
	case map[string]any:
		obj := make(map[string]Value, len(v))
		for key, item := range v {
			converted, err := tomlValueToValue(item)
			if err != nil {
				return NewNil(), err
			}
			obj[key] = converted
		}
		return NewHash(obj), nil
	default:
		return NewNil(), fmt.Errorf("unsupported value type %T", val)
	}
}
