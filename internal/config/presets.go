package config

import (
	"sort"

	"github.com/Technologicat/materials/internal/increment"
	"github.com/Technologicat/materials/internal/loading"
)

var defaultSolver = SolverConfig{MaxIter: increment.DefaultMaxIter, Tol: increment.DefaultTol}

var Presets = map[string]map[string]*Config{
	"elastic": {
		"tension": {
			Material: MaterialConfig{Model: "elastic", Params: map[string]float64{"E": 200000, "nu": 0.3}},
			Path:     PathConfig{Kind: loading.Uniaxial, Shape: "ramp", Amplitude: 1e-3, Steps: 10, Dt: 0.25},
			Solver:   defaultSolver,
		},
		"shear": {
			Material: MaterialConfig{Model: "elastic", Params: map[string]float64{"E": 200000, "nu": 0.3}},
			Path:     PathConfig{Kind: loading.Biaxial, Shape: "ramp", Amplitude: 5e-4, Shear: 1e-3, Steps: 10, Dt: 0.25},
			Solver:   defaultSolver,
		},
		"load_control": {
			Material: MaterialConfig{Model: "elastic", Params: map[string]float64{"E": 70000, "nu": 0.33}},
			Path:     PathConfig{Kind: loading.StressDriven, Shape: "cyclic", Amplitude: 150, Steps: 10, Cycles: 1, Dt: 0.1},
			Solver:   defaultSolver,
		},
	},
	"ideal_plastic": {
		"push_pull": {
			Material: MaterialConfig{Model: "ideal_plastic", Params: map[string]float64{"E": 200000, "nu": 0.3, "yield_stress": 100}},
			Path:     PathConfig{Kind: loading.Uniaxial, Shape: "cyclic", Amplitude: 2e-3, Steps: 20, Cycles: 2, Dt: 0.1},
			Solver:   defaultSolver,
		},
		"monotonic": {
			Material: MaterialConfig{Model: "ideal_plastic", Params: map[string]float64{"E": 200000, "nu": 0.3, "yield_stress": 100}},
			Path:     PathConfig{Kind: loading.Uniaxial, Shape: "ramp", Amplitude: 5e-3, Steps: 50, Dt: 0.1},
			Solver:   defaultSolver,
		},
		"tension_torsion": {
			Material: MaterialConfig{Model: "ideal_plastic", Params: map[string]float64{"E": 200000, "nu": 0.3, "yield_stress": 100}},
			Path:     PathConfig{Kind: loading.Biaxial, Shape: "cyclic", Amplitude: 1e-3, Shear: 1e-3, Steps: 20, Cycles: 1, Dt: 0.1},
			Solver:   defaultSolver,
		},
		"below_yield": {
			Material: MaterialConfig{Model: "ideal_plastic", Params: map[string]float64{"E": 200000, "nu": 0.3, "yield_stress": 100}},
			Path:     PathConfig{Kind: loading.StressDriven, Shape: "cyclic", Amplitude: 80, Steps: 10, Cycles: 2, Dt: 0.1},
			Solver:   defaultSolver,
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
