package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/catalog"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// Scenario defines one inspection run and what it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is the reference data the engine runs against.
	Catalog catalog.Document `yaml:"catalog"`

	// Session is created before the first step.
	Session SessionSpec `yaml:"session"`

	// Steps run in order against the same session.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state after all steps.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// SessionSpec describes the session a scenario opens.
type SessionSpec struct {
	Coach  string `yaml:"coach"`
	Module string `yaml:"module"`
}

// Step is one engine call. Which fields apply depends on Op.
type Step struct {
	Op string `yaml:"op"`

	Question    string `yaml:"question,omitempty"`
	Compartment string `yaml:"compartment,omitempty"`
	Activity    string `yaml:"activity,omitempty"`

	Status      string   `yaml:"status,omitempty"`
	Value       *float64 `yaml:"value,omitempty"`
	Reasons     []string `yaml:"reasons,omitempty"`
	Remarks     string   `yaml:"remarks,omitempty"`
	BeforePhoto string   `yaml:"before_photo,omitempty"`

	AfterPhoto string `yaml:"after_photo,omitempty"`
	Remark     string `yaml:"remark,omitempty"`

	Area string `yaml:"area,omitempty"`

	// Expect is checked against the step's result. Nil means the step
	// must succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is a subset match on a step result or an assertion. Unset fields
// are not checked.
type Expect struct {
	// Error is the expected error code. When set the step must fail with it.
	Error string `yaml:"error,omitempty"`

	Status         string `yaml:"status,omitempty"`
	Total          *int   `yaml:"total,omitempty"`
	Completed      *int   `yaml:"completed,omitempty"`
	PendingDefects *int   `yaml:"pending_defects,omitempty"`
	Percentage     *int   `yaml:"percentage,omitempty"`
	Score          *int   `yaml:"score,omitempty"`
}

// Assertion validates final state.
type Assertion struct {
	Type   string `yaml:"type"`
	Area   string `yaml:"area,omitempty"`
	Expect Expect `yaml:"expect"`
}

// Step operations.
const (
	OpSubmit          = "submit"
	OpResolve         = "resolve"
	OpProgress        = "progress"
	OpSessionProgress = "session_progress"
	OpDefects         = "defects"
	OpScore           = "score"
	OpComplete        = "complete"
)

// Assertion type constants.
const (
	AssertSessionStatus  = "session_status"
	AssertAreaProgress   = "area_progress"
	AssertPendingDefects = "pending_defects"
	AssertScore          = "score"
)

var validOps = []string{OpSubmit, OpResolve, OpProgress, OpSessionProgress, OpDefects, OpScore, OpComplete}

var validAssertions = []string{AssertSessionStatus, AssertAreaProgress, AssertPendingDefects, AssertScore}

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

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "assertion:" vs "assertions:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Catalog.Areas) == 0 {
		return fmt.Errorf("catalog must declare at least one area")
	}
	if s.Session.Coach == "" {
		return fmt.Errorf("session.coach is required")
	}
	if _, err := model.ParseModuleKind(s.Session.Module); err != nil {
		return fmt.Errorf("session.module: %w", err)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps must contain at least one step")
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	for i, a := range s.Assertions {
		if !slices.Contains(validAssertions, a.Type) {
			return fmt.Errorf("assertions[%d]: unknown type %q (valid: %v)", i, a.Type, validAssertions)
		}
		if a.Type == AssertAreaProgress && a.Area == "" {
			return fmt.Errorf("assertions[%d]: area_progress requires area", i)
		}
	}
	return nil
}

func validateStep(step Step) error {
	if !slices.Contains(validOps, step.Op) {
		return fmt.Errorf("unknown op %q (valid: %v)", step.Op, validOps)
	}
	switch step.Op {
	case OpSubmit, OpResolve:
		if step.Question == "" {
			return fmt.Errorf("%s requires question", step.Op)
		}
	case OpProgress:
		if step.Area == "" {
			return fmt.Errorf("progress requires area")
		}
	}
	return nil
}
