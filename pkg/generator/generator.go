// Package generator synthesises a complete schematic from a power supply
// requirement in one shot, by matching the requirement against an ordered
// catalog of topology rules.
//
// Generation runs two checks in order:
//  1. Physical validation: both voltages must be finite and in range, and the
//     input voltage must exceed the output voltage. This takes priority over
//     rule matching.
//  2. Topology matching: rules are tried in priority order and the first rule
//     whose guard holds is built.
//
// Failures are returned as typed errors (ValidationError, NoRuleError,
// BuildError) that match ErrValidation, ErrNoRule and ErrBuild with errors.Is.
package generator

import (
	"log/slog"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/catalog"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

// Engine matches requirements against rules and builds the winning recipe.
type Engine struct {
	rules  []Rule
	exec   *command.Executor
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the built-in rules. Rules are tried in the given order.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) {
		e.rules = append([]Rule(nil), rules...)
	}
}

// WithLogger sets the logger for the engine and its executor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an engine that resolves parts from cat.
func New(cat catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		rules:  DefaultRules(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.exec = command.NewExecutor(cat, command.WithLogger(e.logger))
	return e
}

// Rules returns the engine's rules in priority order.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Generate builds the schematic for req. Exactly one of the results is nil.
func (e *Engine) Generate(req requirement.PowerSupply) (*schematic.Schematic, error) {
	if err := checkRange(req); err != nil {
		e.logger.Warn("requirement rejected", "block", req.BlockName, "error", err)
		return nil, err
	}
	if requirement.Millivolts(req.InputVoltage) <= requirement.Millivolts(req.OutputVoltage) {
		err := &ValidationError{InputVoltage: req.InputVoltage, OutputVoltage: req.OutputVoltage}
		e.logger.Warn("requirement rejected", "block", req.BlockName, "error", err)
		return nil, err
	}

	rule, ok := e.match(req)
	if !ok {
		err := &NoRuleError{OutputVoltage: req.OutputVoltage}
		e.logger.Warn("requirement rejected", "block", req.BlockName, "error", err)
		return nil, err
	}
	e.logger.Debug("rule matched", "block", req.BlockName, "rule", rule.Name)

	sch := schematic.New()
	for _, c := range rule.Recipe {
		if err := e.exec.Build(c, sch, req); err != nil {
			return nil, &BuildError{Rule: rule.Name, Command: c, Err: err}
		}
	}

	e.logger.Info("schematic generated", "block", req.BlockName, "rule", rule.Name, "summary", sch.Summary())
	return sch, nil
}

func checkRange(req requirement.PowerSupply) error {
	for _, v := range []struct {
		name  string
		volts float64
	}{
		{"input voltage", req.InputVoltage},
		{"output voltage", req.OutputVoltage},
	} {
		if err := requirement.CheckVolts(v.name, v.volts); err != nil {
			return &ValidationError{
				InputVoltage:  req.InputVoltage,
				OutputVoltage: req.OutputVoltage,
				Reason:        err.Error(),
			}
		}
	}
	return nil
}

func (e *Engine) match(req requirement.PowerSupply) (Rule, bool) {
	for _, r := range e.rules {
		if r.Guard != nil && r.Guard(req) {
			return r, true
		}
	}
	return Rule{}, false
}
