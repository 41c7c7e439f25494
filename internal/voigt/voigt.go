package voigt

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Size is the number of independent components of a symmetric 3×3 tensor.
const Size = 6

// index pairs of each Voigt slot in the 3×3 tensor
var pairs = [Size][2]int{{0, 0}, {1, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}}

type Vector [Size]float64

type Tensor [3][3]float64

func (v Vector) Slice() []float64 {
	s := make([]float64, Size)
	copy(s, v[:])
	return s
}

func (v Vector) IsValid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	return floats.Norm(v[:], 2)
}

func (v Vector) Add(other Vector) Vector {
	for i := range v {
		v[i] += other[i]
	}
	return v
}

func (v Vector) Sub(other Vector) Vector {
	for i := range v {
		v[i] -= other[i]
	}
	return v
}

func (v Vector) Scale(factor float64) Vector {
	for i := range v {
		v[i] *= factor
	}
	return v
}

// Dot is the plain component-wise product sum. For a stress vector dotted
// with an engineering strain vector it equals the tensor contraction σ:ε.
func (v Vector) Dot(other Vector) float64 {
	return floats.Dot(v[:], other[:])
}

// Trace returns the sum of the normal components.
func (v Vector) Trace() float64 {
	return v[0] + v[1] + v[2]
}

// Deviator returns v minus its spherical part; shear slots are unchanged.
func (v Vector) Deviator() Vector {
	m := v.Trace() / 3
	v[0] -= m
	v[1] -= m
	v[2] -= m
	return v
}

// StrainToTensor converts an engineering-shear strain vector to tensor form.
func StrainToTensor(v Vector) Tensor {
	return toTensor(v, 0.5)
}

// TensorToStrain converts a strain tensor to Voigt form with engineering shear.
func TensorToStrain(t Tensor) Vector {
	return fromTensor(t, 2)
}

// StressToTensor converts a stress vector to tensor form; shear is not scaled.
func StressToTensor(v Vector) Tensor {
	return toTensor(v, 1)
}

// TensorToStress converts a stress tensor to Voigt form; shear is not scaled.
func TensorToStress(t Tensor) Vector {
	return fromTensor(t, 1)
}

func toTensor(v Vector, shear float64) Tensor {
	var t Tensor
	for k, p := range pairs {
		c := v[k]
		if k >= 3 {
			c *= shear
		}
		t[p[0]][p[1]] = c
		t[p[1]][p[0]] = c
	}
	return t
}

func fromTensor(t Tensor, shear float64) Vector {
	var v Vector
	for k, p := range pairs {
		v[k] = t[p[0]][p[1]]
		if k >= 3 {
			v[k] *= shear
		}
	}
	return v
}
