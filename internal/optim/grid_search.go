package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Technologicat/materials/internal/config"
	"github.com/Technologicat/materials/internal/experiment"
)

var ErrNoCandidate = errors.New("optim: no parameter combination completed the path")

// GridSearch calibrates material parameters by running the configured path
// at every point of a grid and keeping the one whose metric lands closest
// to the target.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

type Fit struct {
	Params map[string]float64
	Value  float64
	Miss   float64
	Runs   int
	Failed int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search fills cfg's material parameters from the grid. Combinations whose
// run fails are counted and skipped.
func (g *GridSearch) Search(ctx context.Context, cfg *config.Config, metricName string, target float64) (*Fit, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	fit := &Fit{Miss: math.Inf(1)}
	err := g.searchRecursive(ctx, 0, copyParams(cfg.Material.Params), cfg, metricName, target, fit)
	if err != nil {
		return nil, err
	}
	if fit.Params == nil {
		return fit, ErrNoCandidate
	}
	return fit, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	target float64,
	fit *Fit,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := base.Clone()
		cfg.Material.Params = copyParams(current)

		fit.Runs++
		result, err := experiment.Run(ctx, cfg)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fit.Failed++
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: unknown metric %q", metricName)
		}
		if miss := math.Abs(val - target); miss < fit.Miss {
			fit.Miss = miss
			fit.Value = val
			fit.Params = copyParams(current)
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := copyParams(current)
		next[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, next, base, metricName, target, fit); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

func copyParams(p map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
