package experiment

import (
	"context"
	"fmt"

	"github.com/Technologicat/materials/internal/config"
	"github.com/Technologicat/materials/internal/loading"
	"github.com/Technologicat/materials/internal/material"
	"github.com/Technologicat/materials/internal/metrics"
)

// Experiment binds one material point, one load path and a driver with the
// default metrics attached.
type Experiment struct {
	cfg    *config.Config
	model  material.Model
	path   loading.Path
	driver *loading.Driver
}

func New(cfg *config.Config) (*Experiment, error) {
	model, err := material.New(cfg.Material.Model, cfg.Material.Params)
	if err != nil {
		return nil, err
	}

	path, err := cfg.BuildPath()
	if err != nil {
		return nil, fmt.Errorf("path: %w", err)
	}

	driver := loading.NewDriver(cfg.SolverConfig())
	for _, m := range metrics.Default() {
		driver.AddMetric(m)
	}

	return &Experiment{cfg: cfg, model: model, path: path, driver: driver}, nil
}

func (e *Experiment) Run(ctx context.Context) (*loading.Result, error) {
	return e.driver.Run(ctx, e.model, e.path)
}

func (e *Experiment) Model() material.Model  { return e.model }
func (e *Experiment) Path() loading.Path      { return e.path }
func (e *Experiment) Driver() *loading.Driver { return e.driver }
func (e *Experiment) Config() *config.Config  { return e.cfg }

// Describe names the load program for run metadata.
func (e *Experiment) Describe() string {
	pc := e.cfg.Path
	if pc.Shape == "segments" {
		return fmt.Sprintf("segments(%d)", len(pc.Segments))
	}
	return fmt.Sprintf("%s %s amp=%g steps=%d", pc.Kind, pc.Shape, pc.Amplitude, len(e.path))
}

// Run builds and runs cfg in one call.
func Run(ctx context.Context, cfg *config.Config) (*loading.Result, error) {
	exp, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
