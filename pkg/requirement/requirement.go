// Package requirement defines the structured inputs to schematic synthesis.
package requirement

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// PowerSupply describes one power supply block.
//
// MaxOutputCurrent and ProtectionFeatures are carried through synthesis but
// are not used by the built-in topology rules.
type PowerSupply struct {
	BlockName          string   `json:"block_name"`
	InputVoltage       float64  `json:"input_voltage_v"`
	OutputVoltage      float64  `json:"output_voltage_v"`
	MaxOutputCurrent   float64  `json:"max_output_current_a"`
	ProtectionFeatures []string `json:"protection_features"`
}

// NewPowerSupply builds a PowerSupply. The feature list is always a fresh,
// non-nil slice owned by the returned value.
func NewPowerSupply(name string, in, out, current float64, features ...string) PowerSupply {
	owned := make([]string, len(features))
	copy(owned, features)
	return PowerSupply{
		BlockName:          name,
		InputVoltage:       in,
		OutputVoltage:      out,
		MaxOutputCurrent:   current,
		ProtectionFeatures: owned,
	}
}

// Check validates the fields collected from a user. It is a front-end check
// and is independent of the physical validation done during generation.
func (p PowerSupply) Check() error {
	var errs []error
	if strings.TrimSpace(p.BlockName) == "" {
		errs = append(errs, errors.New("block name cannot be empty"))
	}
	if err := CheckVolts("input voltage", p.InputVoltage); err != nil {
		errs = append(errs, err)
	}
	if err := CheckVolts("output voltage", p.OutputVoltage); err != nil {
		errs = append(errs, err)
	}
	if math.IsNaN(p.MaxOutputCurrent) || math.IsInf(p.MaxOutputCurrent, 0) {
		errs = append(errs, fmt.Errorf("max output current must be a finite number, got %g", p.MaxOutputCurrent))
	} else if p.MaxOutputCurrent <= 0 {
		errs = append(errs, fmt.Errorf("max output current must be positive, got %g", p.MaxOutputCurrent))
	}
	return errors.Join(errs...)
}

// String renders a short human-readable form.
func (p PowerSupply) String() string {
	return fmt.Sprintf("%s: %sV -> %sV @ %gA", p.BlockName,
		FormatVolts(p.InputVoltage), FormatVolts(p.OutputVoltage), p.MaxOutputCurrent)
}

// Project holds board-level requirements. Optional limits are nil when unset.
type Project struct {
	Name          string   `json:"project_name"`
	MaxLengthMM   *float64 `json:"max_length_mm,omitempty"`
	MaxWidthMM    *float64 `json:"max_width_mm,omitempty"`
	TargetCostUSD *float64 `json:"target_cost_usd,omitempty"`
}

// Check validates a project record collected from a user.
func (p Project) Check() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("project name cannot be empty"))
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"max length", p.MaxLengthMM},
		{"max width", p.MaxWidthMM},
		{"target cost", p.TargetCostUSD},
	} {
		if f.v != nil && *f.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", f.name, *f.v))
		}
	}
	return errors.Join(errs...)
}

// ParseFeatures splits a comma-separated feature list, dropping blank entries.
// The result is never nil.
func ParseFeatures(s string) []string {
	features := []string{}
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	return features
}
