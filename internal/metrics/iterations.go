package metrics

import "github.com/Technologicat/materials/internal/loading"

// MeanIterations is the average number of solver iterations per step.
type MeanIterations struct {
	name    string
	total   int
	samples int
}

func NewMeanIterations() *MeanIterations {
	return &MeanIterations{name: "mean_iterations"}
}

func (m *MeanIterations) Name() string { return m.name }

func (m *MeanIterations) Observe(r loading.Record, s loading.Step) {
	m.total += r.Iterations
	m.samples++
}

func (m *MeanIterations) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *MeanIterations) Reset() {
	m.total = 0
	m.samples = 0
}

// Default returns a fresh set of the standard run metrics.
func Default() []loading.Metric {
	return []loading.Metric{
		NewPeakStress(0),
		NewMeanIterations(),
		NewWork(),
		NewConstraintResidual(),
	}
}
