package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/pitchshare/internal/alloc"
)

// Scenario defines one edit-session conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Resource is the resource identifier the session edits.
	Resource string `yaml:"resource"`

	// Title is the resource's display title fixture.
	Title string `yaml:"title,omitempty"`

	// Subjects seeds the candidate subject directory.
	Subjects []SubjectFixture `yaml:"subjects"`

	// Allocation seeds the server-side allocation before the session starts.
	Allocation []RowFixture `yaml:"allocation"`

	// Steps is the edit session, executed in order.
	Steps []Step `yaml:"steps"`
}

// SubjectFixture seeds one directory entry.
type SubjectFixture struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// RowFixture seeds one server-side allocation row.
type RowFixture struct {
	Subject string `yaml:"subject"`
	Share   int    `yaml:"share"`
	Kind    string `yaml:"kind"`
}

// Step is one edit operation.
//
// Supported ops:
//   - "add": append an empty secondary row
//   - "select": set Subject/Name on the row at Row (1-based position)
//   - "share": set Value on the row at Row
//   - "remove": remove the row at Row
//   - "save": validate the draft and, if approved, commit it
type Step struct {
	Op string `yaml:"op"`

	// Row addresses a row by 1-based display position. Positions are
	// resolved against the draft as it stands when the step runs.
	Row int `yaml:"row,omitempty"`

	// Subject and Name are the picker selection (op "select").
	Subject string `yaml:"subject,omitempty"`
	Name    string `yaml:"name,omitempty"`

	// Value is the share percentage (op "share").
	Value int `yaml:"value,omitempty"`

	// Expect optionally asserts the step's outcome; a mismatch fails the
	// scenario run itself, before any golden comparison.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect asserts the outcome of a "save" or "remove" step.
type Expect struct {
	// Verdict is "approved" or "rejected" (op "save").
	Verdict string `yaml:"verdict,omitempty"`

	// Violations lists the expected violation codes in order (op "save").
	Violations []string `yaml:"violations,omitempty"`

	// Error is the expected error code (op "remove"), e.g. "PROTECTED_ROW".
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and validates a scenario yaml file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks scenario well-formedness before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.Resource == "" {
		return fmt.Errorf("scenario resource is required")
	}
	for i, row := range s.Allocation {
		if !alloc.ValidKinds[alloc.Kind(row.Kind)] {
			return fmt.Errorf("allocation fixture %d: invalid kind %q", i+1, row.Kind)
		}
	}
	for i, step := range s.Steps {
		switch step.Op {
		case "add", "save":
		case "select":
			if step.Row < 1 {
				return fmt.Errorf("step %d: select requires a 1-based row", i+1)
			}
		case "share", "remove":
			if step.Row < 1 {
				return fmt.Errorf("step %d: %s requires a 1-based row", i+1, step.Op)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}
	}
	return nil
}
