package generator

import (
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
)

// Rule is a topology: a guard over the requirement and the build steps that
// realise it when the guard holds.
type Rule struct {
	Name        string
	Description string
	Guard       func(req requirement.PowerSupply) bool
	Recipe      []command.Command
}

// LM7805 needs about 2V of headroom above its 5V output.
const (
	linear5VOutputMV   = 5000
	linear5VMinInputMV = 7000
)

// LinearRegulator5V returns the fixed 5V linear regulator topology with
// input and output decoupling.
func LinearRegulator5V() Rule {
	return Rule{
		Name:        "linear-regulator-5v",
		Description: "LM7805 linear regulator with input and output capacitors",
		Guard: func(req requirement.PowerSupply) bool {
			return requirement.Millivolts(req.OutputVoltage) == linear5VOutputMV &&
				requirement.Millivolts(req.InputVoltage) >= linear5VMinInputMV
		},
		Recipe: []command.Command{
			command.AddRegulator5V,
			command.AddInputCapacitor,
			command.AddOutputCapacitor,
		},
	}
}

// DefaultRules returns the built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{LinearRegulator5V()}
}
