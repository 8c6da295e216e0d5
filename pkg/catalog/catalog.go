// Package catalog provides read-only part lookups for synthesis.
//
// The rule engine and command executor take a Catalog rather than consulting
// a process-wide table, so alternate catalogs (a persisted store, a test
// fixture) can be substituted.
package catalog

import "fmt"

// Part describes a catalog entry. Pins lists the part's pin labels in the
// order build steps assign nets to them.
type Part struct {
	Number      string   `json:"number"`
	Description string   `json:"description"`
	Pins        []string `json:"pins"`
}

// Catalog looks parts up by part number.
type Catalog interface {
	Lookup(number string) (Part, bool)
}

// Memory is an in-memory catalog that remembers registration order.
type Memory struct {
	parts map[string]Part
	order []string
}

// NewMemory returns a catalog holding parts. Later entries replace earlier
// ones with the same number.
func NewMemory(parts ...Part) *Memory {
	m := &Memory{parts: make(map[string]Part)}
	for _, p := range parts {
		m.Register(p)
	}
	return m
}

// Register adds or replaces a part.
func (m *Memory) Register(p Part) {
	if _, ok := m.parts[p.Number]; !ok {
		m.order = append(m.order, p.Number)
	}
	m.parts[p.Number] = clonePart(p)
}

// Lookup returns the part with the given number.
func (m *Memory) Lookup(number string) (Part, bool) {
	p, ok := m.parts[number]
	if !ok {
		return Part{}, false
	}
	return clonePart(p), true
}

// Parts returns all parts in registration order.
func (m *Memory) Parts() []Part {
	out := make([]Part, 0, len(m.order))
	for _, n := range m.order {
		out = append(out, clonePart(m.parts[n]))
	}
	return out
}

// Default returns a new catalog with the parts used by the built-in topologies.
func Default() *Memory {
	return NewMemory(
		Part{
			Number:      "LM7805",
			Description: "5V Positive Voltage Regulator",
			Pins:        []string{"IN", "GND", "OUT"},
		},
		Part{
			Number:      "CAP_10uF",
			Description: "10uF Electrolytic Capacitor",
			Pins:        []string{"1", "2"},
		},
		Part{
			Number:      "CAP_0.1uF",
			Description: "0.1uF Ceramic Capacitor",
			Pins:        []string{"1", "2"},
		},
	)
}

// Validate checks that a part can be placed.
func (p Part) Validate() error {
	if p.Number == "" {
		return fmt.Errorf("catalog: part number is empty")
	}
	if len(p.Pins) == 0 {
		return fmt.Errorf("catalog: part %s has no pins", p.Number)
	}
	seen := make(map[string]bool, len(p.Pins))
	for _, pin := range p.Pins {
		if pin == "" {
			return fmt.Errorf("catalog: part %s has an empty pin label", p.Number)
		}
		if seen[pin] {
			return fmt.Errorf("catalog: part %s repeats pin %s", p.Number, pin)
		}
		seen[pin] = true
	}
	return nil
}

func clonePart(p Part) Part {
	pins := make([]string, len(p.Pins))
	copy(pins, p.Pins)
	p.Pins = pins
	return p
}
