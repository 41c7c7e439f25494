package config

import (
	"fmt"
	"os"

	"github.com/Technologicat/materials/internal/increment"
	"github.com/Technologicat/materials/internal/loading"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel     = "ideal_plastic"
	DefaultKind      = loading.Uniaxial
	DefaultShape     = "cyclic"
	DefaultAmplitude = 2e-3
	DefaultSteps     = 20
	DefaultCycles    = 1
	DefaultDt        = 0.1
)

type Config struct {
	Material MaterialConfig `yaml:"material"`
	Path     PathConfig     `yaml:"path"`
	Solver   SolverConfig   `yaml:"solver"`
}

type MaterialConfig struct {
	Model  string             `yaml:"model"`
	Params map[string]float64 `yaml:"params"`
}

// PathConfig describes the load program. Shape is "ramp", "cyclic" or
// "segments"; Amplitude is a strain for strain-driven kinds and a stress
// for the stress-driven kind. Steps counts steps per ramp or per quarter
// cycle.
type PathConfig struct {
	Kind      loading.Kind      `yaml:"kind"`
	Shape     string            `yaml:"shape"`
	Amplitude float64           `yaml:"amplitude"`
	Shear     float64           `yaml:"shear"`
	Steps     int               `yaml:"steps"`
	Cycles    int               `yaml:"cycles"`
	Dt        float64           `yaml:"dt"`
	Segments  []loading.Segment `yaml:"segments,omitempty"`
}

type SolverConfig struct {
	MaxIter int     `yaml:"max_iter"`
	Tol     float64 `yaml:"tol"`
}

func DefaultConfig() *Config {
	return &Config{
		Material: MaterialConfig{Model: DefaultModel, Params: map[string]float64{}},
		Path: PathConfig{
			Kind:      DefaultKind,
			Shape:     DefaultShape,
			Amplitude: DefaultAmplitude,
			Steps:     DefaultSteps,
			Cycles:    DefaultCycles,
			Dt:        DefaultDt,
		},
		Solver: SolverConfig{MaxIter: increment.DefaultMaxIter, Tol: increment.DefaultTol},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	out := *c
	out.Material.Params = make(map[string]float64, len(c.Material.Params))
	for k, v := range c.Material.Params {
		out.Material.Params[k] = v
	}
	out.Path.Segments = append([]loading.Segment(nil), c.Path.Segments...)
	return &out
}

func (c *Config) SolverConfig() increment.Config {
	return increment.Config{MaxIter: c.Solver.MaxIter, Tol: c.Solver.Tol}
}

// BuildPath expands the path section into concrete steps.
func (c *Config) BuildPath() (loading.Path, error) {
	pc := c.Path
	var p loading.Path
	switch pc.Shape {
	case "ramp":
		p = loading.Ramp(pc.Kind, pc.Amplitude, pc.Shear, pc.Steps, pc.Dt)
	case "cyclic":
		p = loading.Cyclic(pc.Kind, pc.Amplitude, pc.Shear, pc.Steps, pc.Cycles, pc.Dt)
	case "segments":
		p = loading.FromSegments(pc.Segments)
	default:
		return nil, fmt.Errorf("unknown path shape: %s", pc.Shape)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
