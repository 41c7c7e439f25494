package increment

import (
	"errors"
	"math"
	"testing"

	"github.com/Technologicat/materials/internal/material"
	"github.com/Technologicat/materials/internal/voigt"
)

// stubModel is a linear model with a fixed tangent that counts integrations.
type stubModel struct {
	D         voigt.Tangent
	committed material.State
	predicted material.Prediction
	pending   bool
	calls     int
}

func (s *stubModel) Name() string              { return "stub" }
func (s *stubModel) Committed() material.State { return s.committed.Clone() }
func (s *stubModel) Reset()                    { s.pending = false }

func (s *stubModel) Integrate(d material.Driving) error {
	s.calls++
	de := voigt.TensorToStrain(d.Strain)
	s.predicted = material.Prediction{
		Time:    s.committed.Time + d.Time,
		Strain:  s.committed.Strain.Add(de),
		Stress:  s.committed.Stress.Add(s.D.MulVec(de)),
		Tangent: s.D,
	}
	s.pending = true
	return nil
}

func (s *stubModel) Predicted() (material.Prediction, bool) { return s.predicted, s.pending }

func (s *stubModel) Commit() error {
	if !s.pending {
		return material.ErrNoPrediction
	}
	s.committed = material.State{Time: s.predicted.Time, Strain: s.predicted.Strain, Stress: s.predicted.Stress}
	s.pending = false
	return nil
}

func newElastic(t *testing.T) *material.Elastic {
	t.Helper()
	m, err := material.NewElastic(200000, 0.3)
	if err != nil {
		t.Fatalf("new elastic: %v", err)
	}
	return m
}

func TestSolveUniaxialStrainElastic(t *testing.T) {
	m := newElastic(t)

	res, err := SolveUniaxialStrain(m, 2.5e-4, 0.25, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if res.Iterations != 1 {
		t.Errorf("expected 1 iteration, got %d", res.Iterations)
	}

	want := voigt.Vector{2.5e-4, -7.5e-5, -7.5e-5, 0, 0, 0}
	for i := range want {
		if math.Abs(res.Strain[i]-want[i]) > 1e-12 {
			t.Errorf("dstrain[%d] = %e, want %e", i, res.Strain[i], want[i])
		}
	}

	pr, ok := m.Predicted()
	if !ok {
		t.Fatal("expected a pending prediction")
	}
	for i := 1; i < voigt.Size; i++ {
		if math.Abs(pr.Stress[i]) > 1e-8 {
			t.Errorf("stress[%d] = %e, want ~0", i, pr.Stress[i])
		}
	}
	if math.Abs(pr.Stress[0]-50) > 1e-8 {
		t.Errorf("expected axial stress 50, got %f", pr.Stress[0])
	}
	if c := m.Committed(); c.Stress != (voigt.Vector{}) {
		t.Errorf("solver committed state: %v", c.Stress)
	}
}

func TestSolveLinearSingleIteration(t *testing.T) {
	tests := []struct {
		name  string
		solve func(m material.Model) (*Result, error)
	}{
		{"uniaxial", func(m material.Model) (*Result, error) {
			return SolveUniaxialStrain(m, 1e-3, 1, nil, DefaultConfig())
		}},
		{"biaxial", func(m material.Model) (*Result, error) {
			return SolveBiaxialStrain(m, 1e-3, 5e-4, 1, nil, DefaultConfig())
		}},
		{"stress driven", func(m material.Model) (*Result, error) {
			return SolveStressDrivenUniaxial(m, 80, 1, nil, DefaultConfig())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.solve(newElastic(t))
			if err != nil {
				t.Fatalf("solve failed: %v", err)
			}
			if res.Iterations != 1 {
				t.Errorf("expected 1 iteration, got %d", res.Iterations)
			}
		})
	}
}

func TestSolveFromPoorGuessTakesTwoIterations(t *testing.T) {
	m := newElastic(t)
	guess := voigt.Vector{}

	res, err := SolveUniaxialStrain(m, 1e-3, 1, &guess, DefaultConfig())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if res.Iterations != 2 {
		t.Errorf("expected 2 iterations, got %d", res.Iterations)
	}
	if res.Strain[0] != 1e-3 {
		t.Errorf("prescribed axial strain not held: %e", res.Strain[0])
	}
	if math.Abs(res.Strain[1]+3e-4) > 1e-12 {
		t.Errorf("expected lateral strain -3e-4, got %e", res.Strain[1])
	}
}

func TestSolveBiaxialHoldsShear(t *testing.T) {
	m := newElastic(t)

	res, err := SolveBiaxialStrain(m, 1e-3, 4e-4, 1, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if res.Strain[5] != 4e-4 {
		t.Errorf("expected prescribed shear 4e-4, got %e", res.Strain[5])
	}

	pr, _ := m.Predicted()
	for i := 1; i < 5; i++ {
		if math.Abs(pr.Stress[i]) > 1e-8 {
			t.Errorf("stress[%d] = %e, want ~0", i, pr.Stress[i])
		}
	}
	_, mu := material.Lame(200000, 0.3)
	if math.Abs(pr.Stress[5]-mu*4e-4) > 1e-8 {
		t.Errorf("expected shear stress %f, got %f", mu*4e-4, pr.Stress[5])
	}
}

func TestSolveStressDrivenReachesTarget(t *testing.T) {
	m, _ := material.NewElastic(70000, 0.33)

	for step := 1; step <= 3; step++ {
		prev := m.Committed().Stress
		if _, err := SolveStressDrivenUniaxial(m, 25, 0.1, nil, DefaultConfig()); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if err := m.Commit(); err != nil {
			t.Fatalf("commit %d: %v", step, err)
		}
		now := m.Committed().Stress
		if math.Abs(now[0]-(prev[0]+25)) > 1e-8 {
			t.Errorf("step %d: expected axial stress %f, got %f", step, prev[0]+25, now[0])
		}
		for i := 1; i < voigt.Size; i++ {
			if math.Abs(now[i]) > 1e-8 {
				t.Errorf("step %d: stress[%d] = %e, want ~0", step, i, now[i])
			}
		}
	}
}

func TestSolveIdempotentWithoutCommit(t *testing.T) {
	m, _ := material.NewIdealPlastic(200000, 0.3, 100)

	first, err := SolveUniaxialStrain(m, 1e-3, 1, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("first solve: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := SolveUniaxialStrain(m, 1e-3, 1, nil, DefaultConfig())
		if err != nil {
			t.Fatalf("solve %d: %v", i, err)
		}
		if *again != *first {
			t.Errorf("solve %d changed result: %+v vs %+v", i, again, first)
		}
	}
}

func TestSolveExhaustion(t *testing.T) {
	m := &stubModel{D: material.IsotropicStiffness(200000, 0.3)}
	corrections := 0
	never := CorrectorFunc(func(dstrain *voigt.Vector, dstress voigt.Vector, tangent voigt.Tangent) (float64, error) {
		corrections++
		return 1.0, nil
	})

	cfg := Config{MaxIter: 7, Tol: 1e-9}
	_, err := Solve(m, voigt.Vector{1e-3}, 1, never, cfg)

	var ce *ConvergenceError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConvergenceError, got %v", err)
	}
	if !errors.Is(err, ErrNotConverged) {
		t.Error("ConvergenceError should match ErrNotConverged")
	}
	if ce.Iterations != 7 || ce.Residual != 1.0 {
		t.Errorf("expected 7 iterations with residual 1, got %+v", ce)
	}
	if m.calls != 7 || corrections != 7 {
		t.Errorf("expected 7 integrations and corrections, got %d and %d", m.calls, corrections)
	}
}

func TestSolveSingularTangent(t *testing.T) {
	m := &stubModel{}

	_, err := SolveUniaxialStrain(m, 1e-3, 1, nil, DefaultConfig())
	if !errors.Is(err, ErrSingularTangent) {
		t.Fatalf("expected ErrSingularTangent, got %v", err)
	}
	if errors.Is(err, ErrNotConverged) {
		t.Error("singular tangent must not be reported as non-convergence")
	}

	var st *SingularTangentError
	if !errors.As(err, &st) {
		t.Fatalf("expected SingularTangentError, got %T", err)
	}
	if st.Iteration != 1 || st.Size != 5 {
		t.Errorf("expected 5x5 block at iteration 1, got %+v", st)
	}
}

func TestSolveInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		dt   float64
	}{
		{"zero max iter", Config{MaxIter: 0, Tol: 1e-9}, 1},
		{"zero tol", Config{MaxIter: 10, Tol: 0}, 1},
		{"NaN tol", Config{MaxIter: 10, Tol: math.NaN()}, 1},
		{"zero dt", DefaultConfig(), 0},
		{"negative dt", DefaultConfig(), -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &stubModel{D: material.IsotropicStiffness(200000, 0.3)}
			_, err := Solve(m, voigt.Vector{}, tt.dt, UniaxialStrain{}, tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if m.calls != 0 {
				t.Errorf("expected no integration, got %d", m.calls)
			}
		})
	}
}

func TestSolveDoesNotAliasGuess(t *testing.T) {
	m := newElastic(t)
	guess := voigt.Vector{}
	if _, err := SolveUniaxialStrain(m, 1e-3, 1, &guess, DefaultConfig()); err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if guess != (voigt.Vector{}) {
		t.Errorf("caller guess was mutated: %v", guess)
	}
}

func TestDefaultGuesses(t *testing.T) {
	tests := []struct {
		name string
		got  voigt.Vector
		want voigt.Vector
	}{
		{"uniaxial", DefaultUniaxialGuess(1e-3), voigt.Vector{1e-3, -3e-4, -3e-4, 0, 0, 0}},
		{"biaxial", DefaultBiaxialGuess(1e-3, 2e-3), voigt.Vector{1e-3, -3e-4, -3e-4, 0, 0, 2e-3}},
		{"stress driven", DefaultStressDrivenGuess(200), voigt.Vector{1e-3, -3e-4, -3e-4, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range tt.want {
				if math.Abs(tt.got[i]-tt.want[i]) > 1e-15 {
					t.Errorf("guess[%d] = %e, want %e", i, tt.got[i], tt.want[i])
				}
			}
		})
	}
}
