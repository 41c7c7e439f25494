package experiment

import (
	"context"
	"fmt"

	"github.com/Technologicat/materials/internal/config"
	"github.com/Technologicat/materials/internal/loading"
	"github.com/Technologicat/materials/internal/material"
	"github.com/Technologicat/materials/internal/metrics"
)

// ParameterSweep varies one material parameter linearly over NumSteps
// values from Min to Max.
type ParameterSweep struct {
	Param    string
	Min      float64
	Max      float64
	NumSteps int
}

type SweepResult struct {
	Value      float64
	Metrics    map[string]float64
	Iterations int
	Final      loading.Record
}

func (s *ParameterSweep) Value(i int) float64 {
	if s.NumSteps <= 1 {
		return s.Min
	}
	return s.Min + (s.Max-s.Min)*float64(i)/float64(s.NumSteps-1)
}

// RunSweep runs the configured path once per parameter value, all material
// points in parallel.
func RunSweep(ctx context.Context, cfg *config.Config, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}

	path, err := cfg.BuildPath()
	if err != nil {
		return nil, fmt.Errorf("path: %w", err)
	}

	factory := func(i int) (material.Model, error) {
		m, err := material.New(cfg.Material.Model, cfg.Material.Params)
		if err != nil {
			return nil, err
		}
		c, ok := m.(material.Configurable)
		if !ok {
			return nil, fmt.Errorf("model %s has no tunable parameters", m.Name())
		}
		if err := c.SetParam(sweep.Param, sweep.Value(i)); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, sweep.Value(i), err)
		}
		return m, nil
	}

	ens := loading.NewEnsemble(cfg.SolverConfig(), sweep.NumSteps, metrics.Default)
	runs, err := ens.Run(ctx, factory, path)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		results[i] = SweepResult{
			Value:      sweep.Value(i),
			Metrics:    r.Metrics,
			Iterations: r.TotalIterations,
			Final:      r.Records[len(r.Records)-1],
		}
	}
	return results, nil
}
