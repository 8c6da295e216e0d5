package generator

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
)

var (
	// ErrValidation marks requirements that violate a physical precondition.
	ErrValidation = errors.New("requirement validation failed")
	// ErrNoRule marks requirements no topology rule covers.
	ErrNoRule = errors.New("no generator rule found")
	// ErrBuild marks a matched rule whose recipe could not be built.
	ErrBuild = errors.New("rule recipe could not be built")
)

// ValidationError reports that the input voltage does not exceed the output,
// or, when Reason is set, that a voltage is out of range.
type ValidationError struct {
	InputVoltage  float64
	OutputVoltage float64
	Reason        string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return "Validation Error: " + e.Reason
	}
	return fmt.Sprintf("Validation Error: input voltage (%sV) must be greater than output voltage (%sV)",
		requirement.FormatVolts(e.InputVoltage), requirement.FormatVolts(e.OutputVoltage))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NoRuleError reports that no rule's guard accepted the requirement.
type NoRuleError struct {
	OutputVoltage float64
}

func (e *NoRuleError) Error() string {
	return fmt.Sprintf("No generator rule found for output voltage %sV",
		requirement.FormatVolts(e.OutputVoltage))
}

func (e *NoRuleError) Is(target error) bool {
	return target == ErrNoRule
}

// BuildError reports the recipe step of a matched rule that failed.
type BuildError struct {
	Rule    string
	Command command.Command
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("rule %s: step %s: %v", e.Rule, e.Command, e.Err)
}

func (e *BuildError) Is(target error) bool {
	return target == ErrBuild
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
