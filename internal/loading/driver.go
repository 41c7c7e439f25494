package loading

import (
	"context"

	"github.com/Technologicat/materials/internal/increment"
	"github.com/Technologicat/materials/internal/material"
	"github.com/Technologicat/materials/internal/voigt"
)

// Record is the committed state after one step. Record 0 of a run is the
// state the run started from.
type Record struct {
	Step       int
	Kind       Kind
	Time       float64
	Strain     voigt.Vector
	Stress     voigt.Vector
	Iterations int
	Residual   float64
}

type Metric interface {
	Name() string
	Observe(r Record, s Step)
	Value() float64
	Reset()
}

// Starter is implemented by metrics that need the state a run starts from.
type Starter interface {
	Begin(r Record)
}

type Observer interface {
	OnStep(r Record, s Step)
}

type Result struct {
	Records         []Record
	Metrics         map[string]float64
	TotalIterations int
}

type Driver struct {
	cfg       increment.Config
	metrics   []Metric
	observers []Observer
}

func NewDriver(cfg increment.Config) *Driver {
	return &Driver{
		cfg:       cfg,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) Config() increment.Config { return d.cfg }

// Run solves and commits every step of p in order. On failure the records
// gathered so far are returned together with a *StepError.
func (d *Driver) Run(ctx context.Context, m material.Model, p Path) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Records: make([]Record, 0, len(p)+1),
		Metrics: make(map[string]float64),
	}

	result.Records = append(result.Records, d.Begin(m))

	for i, s := range p {
		select {
		case <-ctx.Done():
			d.collect(result)
			return result, ctx.Err()
		default:
		}

		rec, err := d.Step(m, s, i+1)
		if err != nil {
			d.collect(result)
			return result, err
		}

		result.Records = append(result.Records, rec)
		result.TotalIterations += rec.Iterations
	}

	d.collect(result)
	return result, nil
}

// Begin resets the metrics and hands them the committed state of m as the
// starting record, which it returns.
func (d *Driver) Begin(m material.Model) Record {
	c := m.Committed()
	start := Record{Time: c.Time, Strain: c.Strain, Stress: c.Stress}
	for _, mt := range d.metrics {
		mt.Reset()
		if st, ok := mt.(Starter); ok {
			st.Begin(start)
		}
	}
	return start
}

// Step solves one step, commits it and notifies metrics and observers.
func (d *Driver) Step(m material.Model, s Step, index int) (Record, error) {
	res, err := s.Solve(m, d.cfg)
	if err != nil {
		m.Reset()
		return Record{}, &StepError{Step: index, Time: m.Committed().Time, Wrapped: err}
	}
	if err := m.Commit(); err != nil {
		return Record{}, &StepError{Step: index, Time: m.Committed().Time, Wrapped: err}
	}

	c := m.Committed()
	rec := Record{
		Step:       index,
		Kind:       s.Kind,
		Time:       c.Time,
		Strain:     c.Strain,
		Stress:     c.Stress,
		Iterations: res.Iterations,
		Residual:   res.Residual,
	}

	for _, mt := range d.metrics {
		mt.Observe(rec, s)
	}
	for _, obs := range d.observers {
		obs.OnStep(rec, s)
	}
	return rec, nil
}

func (d *Driver) collect(result *Result) {
	for _, mt := range d.metrics {
		result.Metrics[mt.Name()] = mt.Value()
	}
}
