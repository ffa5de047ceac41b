// Package config loads and validates scenario files. A scenario file is one
// YAML document holding the household account snapshot plus one or more
// named projection scenarios.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hearthfi/hearth/internal/domain"
)

// Household pairs an identifying name with the aggregated account snapshot.
type Household struct {
	Name     string                  `yaml:"name" json:"name"`
	Snapshot *domain.AccountSnapshot `yaml:"accounts,omitempty" json:"accounts,omitempty"`
}

// ScenarioFile is the top-level document.
type ScenarioFile struct {
	Household *Household        `yaml:"household" json:"household"`
	Scenarios []domain.Scenario `yaml:"scenarios" json:"scenarios"`
}

// Scenario finds a scenario by name, or returns the only one when name is
// empty and the file holds exactly one.
func (f *ScenarioFile) Scenario(name string) (*domain.Scenario, error) {
	if name == "" {
		if len(f.Scenarios) == 1 {
			return &f.Scenarios[0], nil
		}
		return nil, fmt.Errorf("file has %d scenarios; pick one by name", len(f.Scenarios))
	}
	for i := range f.Scenarios {
		if f.Scenarios[i].Name == name {
			return &f.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %q not found", name)
}

// InputParser handles parsing of scenario input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a scenario file.
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse unmarshals and validates a scenario document.
func (ip *InputParser) Parse(data []byte) (*ScenarioFile, error) {
	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.Validate(&file); err != nil {
		return nil, fmt.Errorf("scenario file validation failed: %w", err)
	}
	return &file, nil
}

// Validate checks document structure and every scenario's invariants.
func (ip *InputParser) Validate(file *ScenarioFile) error {
	if len(file.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(file.Scenarios))
	for i := range file.Scenarios {
		s := &file.Scenarios[i]
		if s.Name == "" {
			return fmt.Errorf("scenario %d has no name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true

		if err := s.Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	return nil
}
