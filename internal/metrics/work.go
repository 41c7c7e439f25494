package metrics

import "github.com/Technologicat/materials/internal/loading"

// Work accumulates the stress power ∫σ:dε with the trapezoidal rule. For a
// closed strain cycle it is the energy dissipated by the hysteresis loop.
type Work struct {
	name  string
	prev  loading.Record
	total float64
}

func NewWork() *Work {
	return &Work{name: "work"}
}

func (w *Work) Name() string { return w.name }

func (w *Work) Observe(r loading.Record, s loading.Step) {
	de := r.Strain.Sub(w.prev.Strain)
	mean := r.Stress.Add(w.prev.Stress).Scale(0.5)
	w.total += mean.Dot(de)
	w.prev = r
}

func (w *Work) Begin(r loading.Record) { w.prev = r }

func (w *Work) Value() float64 { return w.total }

func (w *Work) Reset() {
	w.prev = loading.Record{}
	w.total = 0
}
