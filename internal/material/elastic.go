package material

import (
	"fmt"

	"github.com/Technologicat/materials/internal/voigt"
)

// Elastic is isotropic linear elasticity.
type Elastic struct {
	point
	E  float64 // Young's modulus
	Nu float64 // Poisson ratio
}

func NewElastic(e, nu float64) (*Elastic, error) {
	if err := checkElastic(e, nu); err != nil {
		return nil, err
	}
	return &Elastic{point: newPoint(0), E: e, Nu: nu}, nil
}

func (m *Elastic) Name() string { return "elastic" }

func (m *Elastic) Integrate(d Driving) error {
	de, err := checkDriving(d)
	if err != nil {
		return err
	}
	D := IsotropicStiffness(m.E, m.Nu)
	stress := m.committed.Stress.Add(D.MulVec(de))
	m.predict(d, de, stress, D, nil)
	return nil
}

func (m *Elastic) GetParams() map[string]float64 {
	return map[string]float64{"E": m.E, "nu": m.Nu}
}

func (m *Elastic) SetParam(name string, value float64) error {
	e, nu := m.E, m.Nu
	switch name {
	case "E":
		e = value
	case "nu":
		nu = value
	default:
		return fmt.Errorf("%w: elastic has no parameter %q", ErrInvalidParameter, name)
	}
	if err := checkElastic(e, nu); err != nil {
		return err
	}
	m.E, m.Nu = e, nu
	return nil
}

// IsotropicStiffness returns the elastic tangent for engineering shear strain.
func IsotropicStiffness(e, nu float64) voigt.Tangent {
	lambda, mu := Lame(e, nu)
	var D voigt.Tangent
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = lambda
		}
		D[i][i] += 2 * mu
		D[i+3][i+3] = mu
	}
	return D
}

// Lame returns the Lamé constants λ and μ (shear modulus).
func Lame(e, nu float64) (lambda, mu float64) {
	lambda = e * nu / ((1 + nu) * (1 - 2*nu))
	mu = e / (2 * (1 + nu))
	return
}

func checkElastic(e, nu float64) error {
	if e <= 0 {
		return fmt.Errorf("%w: E must be positive, got %g", ErrInvalidParameter, e)
	}
	if nu <= -1 || nu >= 0.5 {
		return fmt.Errorf("%w: nu must be in (-1, 0.5), got %g", ErrInvalidParameter, nu)
	}
	return nil
}
