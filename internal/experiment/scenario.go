package experiment

import (
	"context"
	"fmt"
	"os"

	"github.com/Technologicat/materials/internal/config"
	"github.com/Technologicat/materials/internal/loading"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted batch of runs, each a full run configuration.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Runs        []ScenarioStep `yaml:"runs"`
}

type ScenarioStep struct {
	Name   string         `yaml:"name"`
	Config *config.Config `yaml:"config"`
}

// UnmarshalYAML fills each run's config on top of the defaults.
func (s *ScenarioStep) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name   string    `yaml:"name"`
		Config yaml.Node `yaml:"config"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.Name = raw.Name
	if raw.Config.Kind == 0 {
		return nil
	}
	cfg := config.DefaultConfig()
	if err := raw.Config.Decode(cfg); err != nil {
		return err
	}
	s.Config = cfg
	return nil
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	for i, run := range scenario.Runs {
		if run.Config == nil {
			return nil, fmt.Errorf("run %d (%s): missing config", i+1, run.Name)
		}
	}
	return &scenario, nil
}

// RunScenario runs every step in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario) ([]*loading.Result, error) {
	results := make([]*loading.Result, 0, len(scenario.Runs))
	for i, run := range scenario.Runs {
		result, err := Run(ctx, run.Config)
		if err != nil {
			return results, fmt.Errorf("run %d (%s): %w", i+1, run.Name, err)
		}
		results = append(results, result)
	}
	return results, nil
}
