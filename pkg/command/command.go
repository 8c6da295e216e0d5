// Package command implements the incremental build path: a closed set of
// named build steps, each placing one catalog part and wiring its pins into
// named nets of a schematic.
package command

import (
	"errors"
	"fmt"
)

// Command identifies one build step.
type Command int

const (
	AddRegulator5V Command = iota + 1
	AddInputCapacitor
	AddOutputCapacitor

	numCommands = iota
)

var names = [numCommands + 1]string{
	AddRegulator5V:     "add_regulator_5v",
	AddInputCapacitor:  "add_input_capacitor",
	AddOutputCapacitor: "add_output_capacitor",
}

// ErrUnknownCommand is returned when a name is outside the command vocabulary.
var ErrUnknownCommand = errors.New("command: unknown command")

// All returns every command in declaration order.
func All() []Command {
	cmds := make([]Command, 0, numCommands)
	for c := Command(1); c <= numCommands; c++ {
		cmds = append(cmds, c)
	}
	return cmds
}

// Valid reports whether c is a member of the vocabulary.
func (c Command) Valid() bool {
	return c >= 1 && c <= numCommands
}

// String returns the command's wire name.
func (c Command) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return names[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Command) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCommand, int(c))
	}
	return []byte(names[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Command) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse maps a wire name to its command.
func Parse(name string) (Command, error) {
	for c := Command(1); c <= numCommands; c++ {
		if names[c] == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownCommand, name)
}

// ParsePlan parses an ordered list of wire names. It fails on the first name
// outside the vocabulary.
func ParsePlan(names []string) ([]Command, error) {
	plan := make([]Command, 0, len(names))
	for i, name := range names {
		c, err := Parse(name)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		plan = append(plan, c)
	}
	return plan, nil
}

// Names renders a plan as wire names.
func Names(plan []Command) []string {
	out := make([]string, len(plan))
	for i, c := range plan {
		out[i] = c.String()
	}
	return out
}
