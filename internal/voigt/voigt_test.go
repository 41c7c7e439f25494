package voigt

import (
	"math"
	"testing"
)

func TestVector_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vector
		valid bool
	}{
		{"zeros", Vector{}, true},
		{"normal", Vector{1, 2, 3, 4, 5, 6}, true},
		{"with NaN", Vector{1, math.NaN()}, false},
		{"with +Inf", Vector{0, 0, 0, 0, 0, math.Inf(1)}, false},
		{"with -Inf", Vector{math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVector_Arithmetic(t *testing.T) {
	a := Vector{1, 2, 3, 4, 5, 6}
	b := Vector{6, 5, 4, 3, 2, 1}

	sum := a.Add(b)
	for i, v := range sum {
		if v != 7 {
			t.Errorf("Add[%d] = %f, want 7", i, v)
		}
	}

	diff := sum.Sub(b)
	if diff != a {
		t.Errorf("Sub failed: got %v", diff)
	}

	if a[0] != 1 {
		t.Error("Add mutated its receiver")
	}

	scaled := a.Scale(2)
	if scaled[5] != 12 {
		t.Errorf("Scale failed: got %v", scaled)
	}

	if got := (Vector{3, 4}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm = %f, want 5", got)
	}
}

func TestVector_Deviator(t *testing.T) {
	v := Vector{3, 6, 9, 1, 2, 3}
	dev := v.Deviator()

	if math.Abs(dev.Trace()) > 1e-12 {
		t.Errorf("deviator trace = %e, want 0", dev.Trace())
	}
	if dev[3] != 1 || dev[4] != 2 || dev[5] != 3 {
		t.Errorf("deviator changed shear slots: %v", dev)
	}
}

func TestStrainTensorRoundTrip(t *testing.T) {
	v := Vector{1e-3, 2e-3, 3e-3, 4e-3, 5e-3, 6e-3}
	tn := StrainToTensor(v)

	if tn[1][2] != 2e-3 || tn[2][1] != 2e-3 {
		t.Errorf("expected halved 23 shear 2e-3, got %e / %e", tn[1][2], tn[2][1])
	}
	if tn[0][2] != 2.5e-3 {
		t.Errorf("expected halved 13 shear 2.5e-3, got %e", tn[0][2])
	}
	if tn[0][1] != 3e-3 {
		t.Errorf("expected halved 12 shear 3e-3, got %e", tn[0][1])
	}
	if tn[0][0] != 1e-3 {
		t.Errorf("normal component scaled: got %e", tn[0][0])
	}

	if back := TensorToStrain(tn); back != v {
		t.Errorf("round trip mismatch: got %v, want %v", back, v)
	}
}

func TestStressTensorRoundTrip(t *testing.T) {
	v := Vector{10, 20, 30, 40, 50, 60}
	tn := StressToTensor(v)

	if tn[1][2] != 40 || tn[0][2] != 50 || tn[0][1] != 60 {
		t.Errorf("stress shear must not be scaled: %v", tn)
	}
	if back := TensorToStress(tn); back != v {
		t.Errorf("round trip mismatch: got %v, want %v", back, v)
	}
}

func TestTangent_MulVecMatchesDense(t *testing.T) {
	var d Tangent
	for i := range d {
		for j := range d[i] {
			d[i][j] = float64(i*Size + j)
		}
	}
	v := Vector{1, -1, 2, -2, 3, -3}

	got := d.MulVec(v)
	dense := d.Dense()
	for i := 0; i < Size; i++ {
		want := 0.0
		for j := 0; j < Size; j++ {
			want += dense.At(i, j) * v[j]
		}
		if math.Abs(got[i]-want) > 1e-12 {
			t.Errorf("row %d: got %f, want %f", i, got[i], want)
		}
	}
}

func TestOuter(t *testing.T) {
	a := Vector{1, 2}
	b := Vector{0, 0, 3}
	d := Outer(a, b)
	if d[1][2] != 6 {
		t.Errorf("expected 6, got %f", d[1][2])
	}
	if d[0][0] != 0 {
		t.Errorf("expected 0, got %f", d[0][0])
	}
}
