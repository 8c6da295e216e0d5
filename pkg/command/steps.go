package command

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
)

// Role is the electrical function of a net, resolved to a concrete net name
// from the requirement being built.
type Role int

const (
	RoleInput Role = iota
	RoleOutput
	RoleGround
)

// GroundNet is the name of the common return net.
const GroundNet = "GND"

// NetName returns the net name for role under req, e.g. "VIN_12.0V".
// Voltages are rendered canonically so equal rails always share a net.
func NetName(role Role, req requirement.PowerSupply) string {
	switch role {
	case RoleInput:
		return "VIN_" + requirement.FormatVolts(req.InputVoltage) + "V"
	case RoleOutput:
		return "VOUT_" + requirement.FormatVolts(req.OutputVoltage) + "V"
	default:
		return GroundNet
	}
}

// pinRole ties a default pin label to the net role it is wired to.
type pinRole struct {
	label string
	role  Role
}

// step places one part and wires its pins. Catalog pins carrying the
// default labels are wired by label in any order; a catalog that renames
// every pin (datasheet numbers, say) is wired by position.
type step struct {
	ref   string
	part  string
	label string // description prefix; empty uses the catalog description
	pins  []pinRole
}

// roles returns the net role of each catalog pin, in catalog order.
func (s *step) roles(catalogPins []string) ([]Role, error) {
	if len(catalogPins) != len(s.pins) {
		return nil, fmt.Errorf("%w: catalog has %d pins, step wires %d",
			ErrPinMismatch, len(catalogPins), len(s.pins))
	}

	byLabel := make(map[string]Role, len(s.pins))
	for _, p := range s.pins {
		byLabel[p.label] = p.role
	}

	seen := make(map[string]bool, len(catalogPins))
	known := 0
	for _, label := range catalogPins {
		if seen[label] {
			return nil, fmt.Errorf("%w: pin %q listed twice", ErrPinMismatch, label)
		}
		seen[label] = true
		if _, ok := byLabel[label]; ok {
			known++
		}
	}

	roles := make([]Role, len(catalogPins))
	switch known {
	case len(catalogPins):
		for i, label := range catalogPins {
			roles[i] = byLabel[label]
		}
	case 0:
		for i, p := range s.pins {
			roles[i] = p.role
		}
	default:
		return nil, fmt.Errorf("%w: pins %v do not match %v",
			ErrPinMismatch, catalogPins, s.defaultLabels())
	}
	return roles, nil
}

func (s *step) defaultLabels() []string {
	labels := make([]string, len(s.pins))
	for i, p := range s.pins {
		labels[i] = p.label
	}
	return labels
}

var steps = [numCommands + 1]*step{
	AddRegulator5V: {
		ref:  "U1",
		part: "LM7805",
		pins: []pinRole{
			{"IN", RoleInput},
			{"GND", RoleGround},
			{"OUT", RoleOutput},
		},
	},
	AddInputCapacitor: {
		ref:   "C1",
		part:  "CAP_10uF",
		label: "Input Capacitor",
		pins:  []pinRole{{"1", RoleInput}, {"2", RoleGround}},
	},
	AddOutputCapacitor: {
		ref:   "C2",
		part:  "CAP_0.1uF",
		label: "Output Capacitor",
		pins:  []pinRole{{"1", RoleOutput}, {"2", RoleGround}},
	},
}

// Placement describes what a command places: reference designator and part.
type Placement struct {
	Ref  string
	Part string
}

// PlacementOf returns what c places.
func PlacementOf(c Command) (Placement, bool) {
	if !c.Valid() {
		return Placement{}, false
	}
	s := steps[c]
	return Placement{Ref: s.ref, Part: s.part}, true
}
