package increment

import (
	"errors"
	"fmt"
	"math"

	"github.com/Technologicat/materials/internal/material"
	"github.com/Technologicat/materials/internal/voigt"
)

const (
	DefaultMaxIter = 50
	DefaultTol     = 1e-9
)

type Config struct {
	MaxIter int     // iteration cap
	Tol     float64 // convergence threshold on the corrector's error measure
}

func DefaultConfig() Config {
	return Config{MaxIter: DefaultMaxIter, Tol: DefaultTol}
}

// Result describes a converged solve. Strain is the increment that produced
// the model's pending prediction.
type Result struct {
	Strain     voigt.Vector
	Iterations int
	Residual   float64
}

// Solve iterates integrate → residual → correct until the corrector reports
// an error below cfg.Tol. The committed state of m is never modified; on
// success m holds the prediction for Result.Strain and the caller decides
// whether to commit it.
func Solve(m material.Model, guess voigt.Vector, dt float64, c Corrector, cfg Config) (*Result, error) {
	if err := validateConfig(cfg, dt); err != nil {
		return nil, err
	}

	dstrain := guess
	committed := m.Committed().Stress
	residual := math.Inf(1)

	for i := 1; i <= cfg.MaxIter; i++ {
		integrated := dstrain
		d := material.Driving{Time: dt, Strain: voigt.StrainToTensor(dstrain)}
		if err := m.Integrate(d); err != nil {
			return nil, fmt.Errorf("increment: integrate at iteration %d: %w", i, err)
		}

		pr, ok := m.Predicted()
		if !ok {
			return nil, fmt.Errorf("increment: iteration %d: %w", i, material.ErrNoPrediction)
		}
		dstress := pr.Stress.Sub(committed)
		if !dstress.IsValid() {
			return nil, fmt.Errorf("%w: stress residual at iteration %d", ErrInvalidState, i)
		}

		e, err := c.Correct(&dstrain, dstress, pr.Tangent)
		if err != nil {
			var st *SingularTangentError
			if errors.As(err, &st) {
				st.Iteration = i
			}
			return nil, err
		}
		if math.IsNaN(e) || !dstrain.IsValid() {
			return nil, fmt.Errorf("%w: correction at iteration %d", ErrInvalidState, i)
		}

		residual = e
		if residual < cfg.Tol {
			return &Result{Strain: integrated, Iterations: i, Residual: residual}, nil
		}
	}

	return nil, &ConvergenceError{Iterations: cfg.MaxIter, Residual: residual}
}

// SolveUniaxialStrain prescribes the axial strain increment. A nil guess
// selects DefaultUniaxialGuess; a given guess has its axial slot overwritten.
func SolveUniaxialStrain(m material.Model, axial, dt float64, guess *voigt.Vector, cfg Config) (*Result, error) {
	g := DefaultUniaxialGuess(axial)
	if guess != nil {
		g = *guess
		g[0] = axial
	}
	return Solve(m, g, dt, UniaxialStrain{}, cfg)
}

// SolveBiaxialStrain prescribes the axial and the 12 shear strain increments.
func SolveBiaxialStrain(m material.Model, axial, shear, dt float64, guess *voigt.Vector, cfg Config) (*Result, error) {
	g := DefaultBiaxialGuess(axial, shear)
	if guess != nil {
		g = *guess
		g[0] = axial
		g[5] = shear
	}
	return Solve(m, g, dt, BiaxialStrain{}, cfg)
}

// SolveStressDrivenUniaxial prescribes the axial stress increment.
func SolveStressDrivenUniaxial(m material.Model, stress, dt float64, guess *voigt.Vector, cfg Config) (*Result, error) {
	g := DefaultStressDrivenGuess(stress)
	if guess != nil {
		g = *guess
	}
	return Solve(m, g, dt, StressDrivenUniaxial{Stress: stress}, cfg)
}

func validateConfig(cfg Config, dt float64) error {
	if cfg.MaxIter < 1 {
		return fmt.Errorf("%w: max_iter must be positive, got %d", ErrInvalidConfig, cfg.MaxIter)
	}
	if !(cfg.Tol > 0) {
		return fmt.Errorf("%w: tol must be positive, got %g", ErrInvalidConfig, cfg.Tol)
	}
	if !(dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, dt)
	}
	return nil
}
