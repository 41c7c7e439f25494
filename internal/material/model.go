package material

import (
	"fmt"
	"math"

	"github.com/Technologicat/materials/internal/voigt"
)

// Driving is the trial input of one integration call.
type Driving struct {
	Time   float64      // time increment, > 0
	Strain voigt.Tensor // tensorial strain increment
}

// State is the last accepted state of a material point.
type State struct {
	Time     float64
	Strain   voigt.Vector
	Stress   voigt.Vector
	Internal []float64
}

func (s State) Clone() State {
	c := s
	c.Internal = append([]float64(nil), s.Internal...)
	return c
}

// Prediction is the trial outcome of integrating a Driving against the
// committed state. Time and Strain are the totals the state would reach.
type Prediction struct {
	Time     float64
	Strain   voigt.Vector
	Stress   voigt.Vector
	Tangent  voigt.Tangent
	Internal []float64
}

type Model interface {
	Name() string
	Committed() State
	Integrate(d Driving) error
	Predicted() (Prediction, bool)
	Commit() error
	Reset()
}

// Configurable models expose their scalar parameters by name.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// point carries the committed/predicted bookkeeping shared by all models.
type point struct {
	committed State
	predicted Prediction
	pending   bool
}

func newPoint(nInternal int) point {
	return point{committed: State{Internal: make([]float64, nInternal)}}
}

func (p *point) Committed() State { return p.committed.Clone() }

func (p *point) Predicted() (Prediction, bool) {
	if !p.pending {
		return Prediction{}, false
	}
	pr := p.predicted
	pr.Internal = append([]float64(nil), p.predicted.Internal...)
	return pr, true
}

func (p *point) Commit() error {
	if !p.pending {
		return ErrNoPrediction
	}
	p.committed = State{
		Time:     p.predicted.Time,
		Strain:   p.predicted.Strain,
		Stress:   p.predicted.Stress,
		Internal: append([]float64(nil), p.predicted.Internal...),
	}
	p.pending = false
	return nil
}

func (p *point) Reset() {
	p.predicted = Prediction{}
	p.pending = false
}

// predict stores a prediction built from the committed state plus de.
func (p *point) predict(d Driving, de voigt.Vector, stress voigt.Vector, tangent voigt.Tangent, internal []float64) {
	p.predicted = Prediction{
		Time:     p.committed.Time + d.Time,
		Strain:   p.committed.Strain.Add(de),
		Stress:   stress,
		Tangent:  tangent,
		Internal: internal,
	}
	p.pending = true
}

func checkDriving(d Driving) (voigt.Vector, error) {
	if d.Time <= 0 || math.IsNaN(d.Time) {
		return voigt.Vector{}, fmt.Errorf("%w: time increment %g", ErrInvalidIncrement, d.Time)
	}
	de := voigt.TensorToStrain(d.Strain)
	if !de.IsValid() {
		return voigt.Vector{}, fmt.Errorf("%w: strain %v", ErrInvalidIncrement, de)
	}
	return de, nil
}
