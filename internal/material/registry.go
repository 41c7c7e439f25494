package material

import (
	"fmt"
	"sort"
)

const (
	DefaultE     = 200000.0
	DefaultNu    = 0.3
	DefaultYield = 100.0
)

var allocators = map[string]func(params map[string]float64) (Model, error){
	"elastic": func(params map[string]float64) (Model, error) {
		return NewElastic(param(params, "E", DefaultE), param(params, "nu", DefaultNu))
	},
	"ideal_plastic": func(params map[string]float64) (Model, error) {
		return NewIdealPlastic(
			param(params, "E", DefaultE),
			param(params, "nu", DefaultNu),
			param(params, "yield_stress", DefaultYield),
		)
	},
}

// New allocates a model by name; missing parameters take their defaults.
func New(name string, params map[string]float64) (Model, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownModel, name, List())
	}
	return alloc(params)
}

// List returns the registered model names, sorted.
func List() []string {
	names := make([]string, 0, len(allocators))
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func param(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}
