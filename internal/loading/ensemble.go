package loading

import (
	"context"
	"sync"

	"github.com/Technologicat/materials/internal/increment"
	"github.com/Technologicat/materials/internal/material"
)

// Factory allocates the material point of run i.
type Factory func(i int) (material.Model, error)

// Ensemble runs the same path on independent material points in parallel.
type Ensemble struct {
	cfg        increment.Config
	numRuns    int
	newMetrics func() []Metric
}

func NewEnsemble(cfg increment.Config, numRuns int, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, factory Factory, p Path) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			m, err := factory(idx)
			if err != nil {
				errs[idx] = err
				return
			}

			d := NewDriver(e.cfg)
			if e.newMetrics != nil {
				for _, mt := range e.newMetrics() {
					d.AddMetric(mt)
				}
			}

			results[idx], errs[idx] = d.Run(ctx, m, p)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
