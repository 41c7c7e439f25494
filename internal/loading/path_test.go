package loading

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestRamp(t *testing.T) {
	p := Ramp(Uniaxial, 1e-3, 0, 4, 0.25)

	if len(p) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(p))
	}
	for i, s := range p {
		if math.Abs(s.Axial-2.5e-4) > 1e-18 {
			t.Errorf("step %d: expected axial 2.5e-4, got %e", i, s.Axial)
		}
		if s.Stress != 0 {
			t.Errorf("step %d: strain ramp carries stress %f", i, s.Stress)
		}
	}
	if math.Abs(p.Duration()-1) > 1e-12 {
		t.Errorf("expected duration 1, got %f", p.Duration())
	}

	sp := Ramp(StressDriven, 100, 0, 5, 1)
	if sp[0].Stress != 20 || sp[0].Axial != 0 {
		t.Errorf("unexpected stress ramp step %+v", sp[0])
	}
}

func TestCyclicReturnsToZero(t *testing.T) {
	p := Cyclic(Biaxial, 1e-3, 5e-4, 3, 2, 0.1)

	if len(p) != 2*4*3 {
		t.Fatalf("expected 24 steps, got %d", len(p))
	}

	axial, shear, peak := 0.0, 0.0, 0.0
	for _, s := range p {
		axial += s.Axial
		shear += s.Shear
		peak = math.Max(peak, axial)
	}
	if math.Abs(axial) > 1e-15 || math.Abs(shear) > 1e-15 {
		t.Errorf("expected closed cycle, ended at axial %e shear %e", axial, shear)
	}
	if math.Abs(peak-1e-3) > 1e-15 {
		t.Errorf("expected peak 1e-3, got %e", peak)
	}
}

func TestSegmentExpand(t *testing.T) {
	if p := (Segment{Kind: Uniaxial, Steps: 0, Dt: 1}).Expand(); p != nil {
		t.Errorf("expected nil for zero steps, got %v", p)
	}

	p := FromSegments([]Segment{
		{Kind: Uniaxial, Steps: 2, Dt: 1, Axial: 1e-3},
		{Kind: StressDriven, Steps: 1, Dt: 2, Stress: -10},
	})
	if len(p) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(p))
	}
	if p[2].Kind != StressDriven || p[2].Stress != -10 {
		t.Errorf("unexpected last step %+v", p[2])
	}
}

func TestPathValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Path
		want error
	}{
		{"empty", Path{}, ErrEmptyPath},
		{"unknown kind", Path{{Kind: "torsion", Dt: 1}}, ErrUnknownKind},
		{"zero dt", Path{{Kind: Uniaxial, Dt: 0}}, ErrInvalidStep},
		{"ok", Path{{Kind: Uniaxial, Dt: 1}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.want == nil && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadPath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "path.yaml")
	data := `name: push then hold
segments:
  - kind: uniaxial
    steps: 4
    dt: 0.5
    axial: 0.002
  - kind: stress
    steps: 2
    dt: 1
    stress: -20
`
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPath(file)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(p) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(p))
	}
	if p[0].Axial != 5e-4 {
		t.Errorf("expected axial 5e-4, got %e", p[0].Axial)
	}
	if p[5].Stress != -10 {
		t.Errorf("expected stress -10, got %f", p[5].Stress)
	}
}

func TestLoadPath_Invalid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(file, []byte("segments:\n  - kind: torsion\n    steps: 1\n    dt: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPath(file); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}

	if _, err := LoadPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
