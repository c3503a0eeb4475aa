package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario is a named sequence of steps loaded from YAML.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one operation and its expectation. Which argument fields apply
// depends on Op.
type Step struct {
	Op string `yaml:"op"`

	Dimension string   `yaml:"dimension,omitempty"`
	Amount    *float64 `yaml:"amount,omitempty"`
	Whole     *float64 `yaml:"whole,omitempty"`
	Fraction  *float64 `yaml:"fraction,omitempty"`
	From      string   `yaml:"from,omitempty"`
	To        string   `yaml:"to,omitempty"`

	// format
	Digits *int   `yaml:"digits,omitempty"`
	Commas *bool  `yaml:"commas,omitempty"`
	Locale string `yaml:"locale,omitempty"`

	// calc
	Formula string             `yaml:"formula,omitempty"`
	Inputs  map[string]Measure `yaml:"inputs,omitempty"`

	// page
	Page   string      `yaml:"page,omitempty"`
	Events []PageEvent `yaml:"events,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Measure is a formula input or expected output. Value is used with plain
// units and unitless numbers; Whole and Fraction with composite units.
type Measure struct {
	Value    *float64 `yaml:"value,omitempty"`
	Whole    *float64 `yaml:"whole,omitempty"`
	Fraction *float64 `yaml:"fraction,omitempty"`
	Unit     string   `yaml:"unit,omitempty"`
}

// PageEvent is one form event. Exactly one of Edit, Minor, Unit or Reset
// is set.
type PageEvent struct {
	Edit  string `yaml:"edit,omitempty"`
	Minor string `yaml:"minor,omitempty"`
	Raw   string `yaml:"raw,omitempty"`
	Unit  string `yaml:"unit,omitempty"`
	To    string `yaml:"to,omitempty"`
	Reset bool   `yaml:"reset,omitempty"`
}

// Expect is what a step must produce.
type Expect struct {
	Value    *float64 `yaml:"value,omitempty"`
	Whole    *float64 `yaml:"whole,omitempty"`
	Fraction *float64 `yaml:"fraction,omitempty"`
	Text     *string  `yaml:"text,omitempty"`

	// Tolerance is the absolute slack on numeric comparisons. Zero means
	// 1e-9 relative to the expected value.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Empty expects a blank (NaN) result.
	Empty bool `yaml:"empty,omitempty"`

	// Error is the expected error code, e.g. UNKNOWN_UNIT or INVALID_INPUT.
	Error string `yaml:"error,omitempty"`

	Outputs map[string]Measure `yaml:"outputs,omitempty"`

	// Fields maps page fields to their text; composites read "whole fraction".
	Fields map[string]string `yaml:"fields,omitempty"`

	// Errors maps page fields to their inline error text.
	Errors map[string]string `yaml:"errors,omitempty"`
}

// Operation names.
const (
	OpConvert           = "convert"
	OpToComposite       = "to_composite"
	OpFromComposite     = "from_composite"
	OpBetweenComposites = "between_composites"
	OpFormat            = "format"
	OpPitch             = "pitch"
	OpCalc              = "calc"
	OpPage              = "page"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files directly under dir, sorted.
func FindScenarios(dir string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i := range s.Steps {
		if err := validateStep(i, &s.Steps[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks the arguments an operation needs.
func validateStep(index int, st *Step) error {
	need := func(ok bool, what string) error {
		if ok {
			return nil
		}
		return fmt.Errorf("steps[%d]: %s is required for %s", index, what, st.Op)
	}

	var errs []error
	switch st.Op {
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	case OpConvert, OpToComposite, OpFromComposite, OpBetweenComposites:
		errs = append(errs, need(st.Dimension != "", "dimension"), need(st.From != "", "from"), need(st.To != "", "to"))
	case OpFormat:
		if st.Digits != nil && (*st.Digits < 0 || *st.Digits > 20) {
			return fmt.Errorf("steps[%d]: digits must be between 0 and 20", index)
		}
	case OpPitch:
		errs = append(errs, need(st.From != "", "from"), need(st.To != "", "to"))
	case OpCalc:
		errs = append(errs, need(st.Formula != "", "formula"))
	case OpPage:
		errs = append(errs, need(st.Page != "", "page"))
		for j, e := range st.Events {
			if err := validateEvent(e); err != nil {
				return fmt.Errorf("steps[%d].events[%d]: %w", index, j, err)
			}
		}
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func validateEvent(e PageEvent) error {
	set := 0
	for _, s := range []string{e.Edit, e.Minor, e.Unit} {
		if s != "" {
			set++
		}
	}
	if e.Reset {
		set++
	}
	if set != 1 {
		return fmt.Errorf("exactly one of edit, minor, unit or reset is required")
	}
	if e.Unit != "" && e.To == "" {
		return fmt.Errorf("to is required with unit")
	}
	return nil
}
