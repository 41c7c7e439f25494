package metrics

import (
	"math"

	"github.com/Technologicat/materials/internal/loading"
)

// PeakStress tracks the largest absolute value of one stress component.
type PeakStress struct {
	name      string
	component int
	peak      float64
}

func NewPeakStress(component int) *PeakStress {
	return &PeakStress{name: "peak_stress", component: component}
}

func (p *PeakStress) Name() string { return p.name }

func (p *PeakStress) Observe(r loading.Record, s loading.Step) {
	p.peak = math.Max(p.peak, math.Abs(r.Stress[p.component]))
}

func (p *PeakStress) Value() float64 { return p.peak }

func (p *PeakStress) Reset() { p.peak = 0 }

// ConstraintResidual tracks the worst violation of the prescribed stress
// state: the change of every free stress component, and for stress-driven
// steps the miss on the axial target.
type ConstraintResidual struct {
	name  string
	prev  loading.Record
	worst float64
}

func NewConstraintResidual() *ConstraintResidual {
	return &ConstraintResidual{name: "constraint_residual"}
}

func (c *ConstraintResidual) Name() string { return c.name }

func (c *ConstraintResidual) Observe(r loading.Record, s loading.Step) {
	ds := r.Stress.Sub(c.prev.Stress)
	for _, i := range s.Free() {
		c.worst = math.Max(c.worst, math.Abs(ds[i]))
	}
	if s.Kind == loading.StressDriven {
		c.worst = math.Max(c.worst, math.Abs(ds[0]-s.Stress))
	}
	c.prev = r
}

func (c *ConstraintResidual) Begin(r loading.Record) { c.prev = r }

func (c *ConstraintResidual) Value() float64 { return c.worst }

func (c *ConstraintResidual) Reset() {
	c.prev = loading.Record{}
	c.worst = 0
}
