package increment

import (
	"errors"
	"math"

	"github.com/Technologicat/materials/internal/voigt"
	"gonum.org/v1/gonum/mat"
)

// Guess constants for the default initial increments: an elastic-like
// lateral contraction and a steel-like modulus for stress-driven steps.
const (
	GuessPoisson = 0.3
	GuessModulus = 200000.0
)

// MaxCondition is the largest tangent block condition number accepted by
// the correctors.
const MaxCondition = 1e12

// Corrector updates the free components of dstrain in place from the stress
// residual and tangent, and returns the magnitude of the update.
type Corrector interface {
	Correct(dstrain *voigt.Vector, dstress voigt.Vector, tangent voigt.Tangent) (float64, error)
}

// CorrectorFunc adapts a plain function to a Corrector.
type CorrectorFunc func(dstrain *voigt.Vector, dstress voigt.Vector, tangent voigt.Tangent) (float64, error)

func (f CorrectorFunc) Correct(dstrain *voigt.Vector, dstress voigt.Vector, tangent voigt.Tangent) (float64, error) {
	return f(dstrain, dstress, tangent)
}

// UniaxialStrain holds the axial strain (component 1) and drives the stress
// of components 2–6 to zero: a push-pull rig with free lateral surfaces.
type UniaxialStrain struct{}

func (UniaxialStrain) Correct(dstrain *voigt.Vector, dstress voigt.Vector, tangent voigt.Tangent) (float64, error) {
	return correctBlock(dstrain, dstress, tangent, 1, 6)
}

// BiaxialStrain holds the axial strain and the 12 shear strain (components 1
// and 6) and drives the stress of components 2–5 to zero.
type BiaxialStrain struct{}

func (BiaxialStrain) Correct(dstrain *voigt.Vector, dstress voigt.Vector, tangent voigt.Tangent) (float64, error) {
	return correctBlock(dstrain, dstress, tangent, 1, 5)
}

// StressDrivenUniaxial prescribes the axial stress increment; every strain
// component is free and the other stress components are driven to zero.
type StressDrivenUniaxial struct {
	Stress float64 // prescribed axial stress increment
}

func (c StressDrivenUniaxial) Correct(dstrain *voigt.Vector, dstress voigt.Vector, tangent voigt.Tangent) (float64, error) {
	residual := dstress
	residual[0] -= c.Stress
	return correctBlock(dstrain, residual, tangent, 0, voigt.Size)
}

func DefaultUniaxialGuess(axial float64) voigt.Vector {
	return voigt.Vector{axial, -GuessPoisson * axial, -GuessPoisson * axial, 0, 0, 0}
}

func DefaultBiaxialGuess(axial, shear float64) voigt.Vector {
	return voigt.Vector{axial, -GuessPoisson * axial, -GuessPoisson * axial, 0, 0, shear}
}

func DefaultStressDrivenGuess(stress float64) voigt.Vector {
	return DefaultUniaxialGuess(stress / GuessModulus)
}

// correctBlock solves D[lo:hi, lo:hi]·c = −residual[lo:hi] and adds c into
// dstrain[lo:hi]. Components outside the block are left untouched.
func correctBlock(dstrain *voigt.Vector, residual voigt.Vector, tangent voigt.Tangent, lo, hi int) (float64, error) {
	c, err := solveBlock(tangent, residual, lo, hi)
	if err != nil {
		return 0, err
	}
	*dstrain = dstrain.Add(c)
	return c.Norm(), nil
}

func solveBlock(tangent voigt.Tangent, residual voigt.Vector, lo, hi int) (voigt.Vector, error) {
	n := hi - lo
	a := tangent.Dense().Slice(lo, hi, lo, hi)

	var lu mat.LU
	lu.Factorize(a)
	if cond := lu.Cond(); math.IsInf(cond, 1) || math.IsNaN(cond) || cond > MaxCondition {
		return voigt.Vector{}, &SingularTangentError{Size: n, Cond: cond}
	}

	rhs := residual.Scale(-1)
	b := mat.NewVecDense(n, rhs[lo:hi])
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, b); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return voigt.Vector{}, &SingularTangentError{Size: n, Cond: float64(cond)}
		}
		return voigt.Vector{}, err
	}

	var c voigt.Vector
	for i := 0; i < n; i++ {
		c[lo+i] = x.AtVec(i)
	}
	return c, nil
}
