// Package harness runs YAML-described conformance scenarios against
// the query engine and compares their results to golden files.
//
// A scenario names a dataset directory and a list of query steps.
// Taxi randomness is scripted per scenario (taxi_draws) and query
// tokens are scripted per step (q-1, q-2, ...), so every run of a
// scenario produces byte-identical output.
package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// Data is the dataset directory, relative to the scenario file.
	Data string `yaml:"data"`

	// TaxiDraws scripts the random source for taxi steps: color index,
	// type index, then phone digits (exhausted draws are zero, so
	// unscripted phone digits come out as all ones).
	TaxiDraws []int `yaml:"taxi_draws,omitempty"`

	// Steps are executed in order against a single engine.
	Steps []Step `yaml:"steps"`

	// dir is the directory the scenario file was loaded from.
	dir string
}

// Step is a single query.
type Step struct {
	Domain      string           `yaml:"domain"`
	Constraints []ConstraintStep `yaml:"constraints,omitempty"`

	// OpenFields toggles the destination/departure exemption.
	// Defaults to true, the engine default.
	OpenFields *bool `yaml:"open_fields,omitempty"`

	// ExpectCount, when set, asserts the number of matches before any
	// golden comparison happens. A mismatch fails the run with an
	// error naming the step.
	ExpectCount *int `yaml:"expect_count,omitempty"`
}

// ConstraintStep is one (slot, value) pair.
type ConstraintStep struct {
	Slot  string `yaml:"slot"`
	Value string `yaml:"value"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if s.Data == "" {
		return nil, fmt.Errorf("scenario %s: missing data directory", path)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}
	for i, step := range s.Steps {
		if step.Domain == "" {
			return nil, fmt.Errorf("scenario %s: step %d missing domain", path, i)
		}
	}

	s.dir = filepath.Dir(path)
	return &s, nil
}

// DataDir returns the dataset directory resolved against the scenario
// file location.
func (s *Scenario) DataDir() string {
	if filepath.IsAbs(s.Data) || s.dir == "" {
		return s.Data
	}
	return filepath.Join(s.dir, s.Data)
}
