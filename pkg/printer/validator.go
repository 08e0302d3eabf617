package printer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator supplies the outcome of a previous submission: the submitted data,
// per-field messages and per-field validity (true means valid).
type Validator interface {
	Data() map[string]any
	Messages() map[string]any
	Validity() map[string]bool
}

// State is a static Validator, typically loaded from a YAML fixture.
type State struct {
	Values map[string]any  `yaml:"values,omitempty"`
	Errors map[string]any  `yaml:"errors,omitempty"`
	Valid  map[string]bool `yaml:"valid,omitempty"`
}

func (s State) Data() map[string]any      { return s.Values }
func (s State) Messages() map[string]any  { return s.Errors }
func (s State) Validity() map[string]bool { return s.Valid }

// LoadState decodes a State from YAML or JSON.
func LoadState(data []byte) (*State, error) {
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("printer: decode state: %w", err)
	}
	return &s, nil
}

// LoadStateFile reads a State from path.
func LoadStateFile(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("printer: read state %q: %w", path, err)
	}
	return LoadState(data)
}
