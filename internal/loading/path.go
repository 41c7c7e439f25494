package loading

import (
	"fmt"
	"os"

	"github.com/Technologicat/materials/internal/increment"
	"github.com/Technologicat/materials/internal/material"
	"gopkg.in/yaml.v3"
)

type Kind string

const (
	Uniaxial     Kind = "uniaxial"
	Biaxial      Kind = "biaxial"
	StressDriven Kind = "stress"
)

func (k Kind) Valid() bool {
	switch k {
	case Uniaxial, Biaxial, StressDriven:
		return true
	}
	return false
}

// Step is one prescribed increment. Axial and Shear are strain increments
// (engineering shear); Stress is the axial stress increment.
type Step struct {
	Kind   Kind    `yaml:"kind" json:"kind"`
	Dt     float64 `yaml:"dt" json:"dt"`
	Axial  float64 `yaml:"axial,omitempty" json:"axial,omitempty"`
	Shear  float64 `yaml:"shear,omitempty" json:"shear,omitempty"`
	Stress float64 `yaml:"stress,omitempty" json:"stress,omitempty"`
}

// Solve finds the increment for this step with the default initial guess.
// The model is left holding the prediction; nothing is committed.
func (s Step) Solve(m material.Model, cfg increment.Config) (*increment.Result, error) {
	switch s.Kind {
	case Uniaxial:
		return increment.SolveUniaxialStrain(m, s.Axial, s.Dt, nil, cfg)
	case Biaxial:
		return increment.SolveBiaxialStrain(m, s.Axial, s.Shear, s.Dt, nil, cfg)
	case StressDriven:
		return increment.SolveStressDrivenUniaxial(m, s.Stress, s.Dt, nil, cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
}

// Free returns the Voigt slots whose stress increment the step drives to
// zero.
func (s Step) Free() []int {
	switch s.Kind {
	case Biaxial:
		return []int{1, 2, 3, 4}
	default:
		return []int{1, 2, 3, 4, 5}
	}
}

type Path []Step

func (p Path) Duration() float64 {
	total := 0.0
	for _, s := range p {
		total += s.Dt
	}
	return total
}

func (p Path) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPath
	}
	for i, s := range p {
		if !s.Kind.Valid() {
			return fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownKind, s.Kind)
		}
		if !(s.Dt > 0) {
			return fmt.Errorf("step %d: %w: dt %g", i+1, ErrInvalidStep, s.Dt)
		}
	}
	return nil
}

// Segment spreads a total increment evenly over Steps equal steps.
type Segment struct {
	Kind   Kind    `yaml:"kind"`
	Steps  int     `yaml:"steps"`
	Dt     float64 `yaml:"dt"`
	Axial  float64 `yaml:"axial"`
	Shear  float64 `yaml:"shear"`
	Stress float64 `yaml:"stress"`
}

func (g Segment) Expand() Path {
	if g.Steps < 1 {
		return nil
	}
	n := float64(g.Steps)
	step := Step{Kind: g.Kind, Dt: g.Dt, Axial: g.Axial / n, Shear: g.Shear / n, Stress: g.Stress / n}
	p := make(Path, g.Steps)
	for i := range p {
		p[i] = step
	}
	return p
}

func FromSegments(segments []Segment) Path {
	var p Path
	for _, g := range segments {
		p = append(p, g.Expand()...)
	}
	return p
}

// Ramp loads monotonically to (axial, shear) for strain kinds, or to an
// axial stress of amplitude for StressDriven.
func Ramp(kind Kind, amplitude, shear float64, steps int, dt float64) Path {
	return Segment{Kind: kind, Steps: steps, Dt: dt, Axial: strainPart(kind, amplitude), Shear: shear, Stress: stressPart(kind, amplitude)}.Expand()
}

// Cyclic builds a triangular push-pull program 0 → +A → −A → 0 repeated
// cycles times, with quarter steps per quarter cycle. Shear follows the
// axial wave proportionally.
func Cyclic(kind Kind, amplitude, shear float64, quarter, cycles int, dt float64) Path {
	up := Segment{Kind: kind, Steps: quarter, Dt: dt, Axial: strainPart(kind, amplitude), Shear: shear, Stress: stressPart(kind, amplitude)}
	down := Segment{Kind: kind, Steps: 2 * quarter, Dt: dt, Axial: -2 * up.Axial, Shear: -2 * up.Shear, Stress: -2 * up.Stress}

	var segments []Segment
	for c := 0; c < cycles; c++ {
		segments = append(segments, up, down, up)
	}
	return FromSegments(segments)
}

// pathFile is the on-disk layout read by LoadPath.
type pathFile struct {
	Name     string    `yaml:"name"`
	Segments []Segment `yaml:"segments"`
}

// LoadPath reads a YAML file with a list of segments.
func LoadPath(path string) (Path, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f pathFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	p := FromSegments(f.Segments)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func strainPart(kind Kind, amplitude float64) float64 {
	if kind == StressDriven {
		return 0
	}
	return amplitude
}

func stressPart(kind Kind, amplitude float64) float64 {
	if kind == StressDriven {
		return amplitude
	}
	return 0
}
