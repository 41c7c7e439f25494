package voigt

import "gonum.org/v1/gonum/mat"

// Tangent holds ∂σ_i/∂ε_j with stress and engineering strain in Voigt order.
type Tangent [Size][Size]float64

// Dense copies the tangent into a gonum matrix.
func (d Tangent) Dense() *mat.Dense {
	data := make([]float64, 0, Size*Size)
	for i := range d {
		data = append(data, d[i][:]...)
	}
	return mat.NewDense(Size, Size, data)
}

func (d Tangent) MulVec(v Vector) Vector {
	var out Vector
	for i := range d {
		for j := range d[i] {
			out[i] += d[i][j] * v[j]
		}
	}
	return out
}

func (d Tangent) Add(other Tangent) Tangent {
	for i := range d {
		for j := range d[i] {
			d[i][j] += other[i][j]
		}
	}
	return d
}

func (d Tangent) Scale(factor float64) Tangent {
	for i := range d {
		for j := range d[i] {
			d[i][j] *= factor
		}
	}
	return d
}

// Outer returns a⊗b.
func Outer(a, b Vector) Tangent {
	var d Tangent
	for i := range a {
		for j := range b {
			d[i][j] = a[i] * b[j]
		}
	}
	return d
}
