package material

import (
	"fmt"
	"math"

	"github.com/Technologicat/materials/internal/voigt"
)

// internal variable layout of IdealPlastic
const (
	plasticStrain   = 0 // εp, six engineering components
	cumulativeSlot  = 6 // p, accumulated equivalent plastic strain
	idealPlasticLen = 7
)

// IdealPlastic is von Mises plasticity without hardening, integrated with
// a radial return and the algorithmic (consistent) tangent.
type IdealPlastic struct {
	point
	E     float64
	Nu    float64
	Yield float64 // uniaxial yield stress
}

func NewIdealPlastic(e, nu, yield float64) (*IdealPlastic, error) {
	if err := checkIdealPlastic(e, nu, yield); err != nil {
		return nil, err
	}
	return &IdealPlastic{point: newPoint(idealPlasticLen), E: e, Nu: nu, Yield: yield}, nil
}

func (m *IdealPlastic) Name() string { return "ideal_plastic" }

func (m *IdealPlastic) Integrate(d Driving) error {
	de, err := checkDriving(d)
	if err != nil {
		return err
	}

	D := IsotropicStiffness(m.E, m.Nu)
	trial := m.committed.Stress.Add(D.MulVec(de))
	internal := append([]float64(nil), m.committed.Internal...)

	s := trial.Deviator()
	q := Equivalent(s)
	if q-m.Yield <= 0 {
		m.predict(d, de, trial, D, internal)
		return nil
	}

	lambda, mu := Lame(m.E, m.Nu)
	bulk := lambda + 2*mu/3
	dp := (q - m.Yield) / (3 * mu)
	beta := m.Yield / q

	// σ = p·1 + β·s_trial
	stress := trial.Sub(s).Add(s.Scale(beta))

	// flow direction 3/2 s/q, shear doubled for engineering strain
	flow := s.Scale(1.5 / q)
	for k := 3; k < voigt.Size; k++ {
		flow[k] *= 2
	}
	for k := 0; k < voigt.Size; k++ {
		internal[plasticStrain+k] += dp * flow[k]
	}
	internal[cumulativeSlot] += dp

	m.predict(d, de, stress, plasticTangent(bulk, mu, beta, s), internal)
	return nil
}

// PlasticStrain returns the committed plastic strain.
func (m *IdealPlastic) PlasticStrain() voigt.Vector {
	var ep voigt.Vector
	copy(ep[:], m.committed.Internal[plasticStrain:plasticStrain+voigt.Size])
	return ep
}

// CumulativePlasticStrain returns the committed accumulated plastic strain p.
func (m *IdealPlastic) CumulativePlasticStrain() float64 {
	return m.committed.Internal[cumulativeSlot]
}

func (m *IdealPlastic) GetParams() map[string]float64 {
	return map[string]float64{"E": m.E, "nu": m.Nu, "yield_stress": m.Yield}
}

func (m *IdealPlastic) SetParam(name string, value float64) error {
	e, nu, y := m.E, m.Nu, m.Yield
	switch name {
	case "E":
		e = value
	case "nu":
		nu = value
	case "yield_stress":
		y = value
	default:
		return fmt.Errorf("%w: ideal_plastic has no parameter %q", ErrInvalidParameter, name)
	}
	if err := checkIdealPlastic(e, nu, y); err != nil {
		return err
	}
	m.E, m.Nu, m.Yield = e, nu, y
	return nil
}

// Equivalent returns the von Mises equivalent sqrt(3/2 s:s) of a stress deviator.
func Equivalent(s voigt.Vector) float64 {
	return math.Sqrt(1.5 * tensorDot(s, s))
}

// tensorDot is a:b for two stress-like (tensorial shear) vectors.
func tensorDot(a, b voigt.Vector) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + 2*(a[3]*b[3]+a[4]*b[4]+a[5]*b[5])
}

// plasticTangent is K 1⊗1 + 2μβ (I_dev − n⊗n), n = s/‖s‖.
func plasticTangent(bulk, mu, beta float64, s voigt.Vector) voigt.Tangent {
	var D voigt.Tangent
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = bulk - 2*mu*beta/3
		}
		D[i][i] += 2 * mu * beta
		D[i+3][i+3] = mu * beta
	}
	n := s.Scale(1 / math.Sqrt(tensorDot(s, s)))
	return D.Add(voigt.Outer(n, n).Scale(-2 * mu * beta))
}

func checkIdealPlastic(e, nu, yield float64) error {
	if err := checkElastic(e, nu); err != nil {
		return err
	}
	if yield <= 0 {
		return fmt.Errorf("%w: yield_stress must be positive, got %g", ErrInvalidParameter, yield)
	}
	return nil
}
