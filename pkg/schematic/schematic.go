// Package schematic holds the netlist model produced by synthesis: components,
// the pins they expose, and the named nets that join those pins.
//
// A Schematic is a plain accumulator. It is written by one synthesis run and
// read afterwards; it provides no locking, so concurrent callers must each own
// their own instance.
package schematic

import "fmt"

// Pin identifies one connection point on one component instance.
// Pins are comparable values and may be used as map keys.
type Pin struct {
	Ref   string `json:"ref"` // Reference designator of the owning component (e.g. "U1")
	Label string `json:"pin"` // Pin name or number (e.g. "IN", "2")
}

// String renders the pin as "REF.LABEL".
func (p Pin) String() string {
	return p.Ref + "." + p.Label
}

// Component is an instance of a catalog part placed in a schematic.
type Component struct {
	Ref         string `json:"ref"`
	PartNumber  string `json:"part_number"`
	Description string `json:"description"`
}

// Pin returns the pin with the given label on this component.
// The component does not track its pins; membership lives on Net.
func (c Component) Pin(label string) Pin {
	return Pin{Ref: c.Ref, Label: label}
}

// Net is a named set of electrically common pins.
type Net struct {
	name  string
	pins  []Pin
	index map[Pin]struct{}
}

func newNet(name string) *Net {
	return &Net{
		name:  name,
		index: make(map[Pin]struct{}),
	}
}

// Name returns the net name.
func (n *Net) Name() string {
	return n.name
}

// AddConnection adds pin to the net. Adding a pin that is already a member
// is a no-op.
func (n *Net) AddConnection(pin Pin) {
	if _, ok := n.index[pin]; ok {
		return
	}
	n.index[pin] = struct{}{}
	n.pins = append(n.pins, pin)
}

// Contains reports whether pin is a member of the net.
func (n *Net) Contains(pin Pin) bool {
	_, ok := n.index[pin]
	return ok
}

// Len returns the number of distinct pins on the net.
func (n *Net) Len() int {
	return len(n.pins)
}

// Pins returns a copy of the net's pins in the order they were first added.
func (n *Net) Pins() []Pin {
	out := make([]Pin, len(n.pins))
	copy(out, n.pins)
	return out
}

// Schematic owns an ordered list of components and an ordered list of nets.
type Schematic struct {
	components []Component
	nets       []*Net
	byName     map[string]*Net
}

// New returns an empty schematic.
func New() *Schematic {
	return &Schematic{
		byName: make(map[string]*Net),
	}
}

// AddComponent appends c. Reference designators are not checked here; see
// DuplicateRefs and Validate.
func (s *Schematic) AddComponent(c Component) {
	s.components = append(s.components, c)
}

// Components returns the components in insertion order.
func (s *Schematic) Components() []Component {
	out := make([]Component, len(s.components))
	copy(out, s.components)
	return out
}

// FindComponent returns the first component with the given reference designator.
func (s *Schematic) FindComponent(ref string) (Component, bool) {
	for _, c := range s.components {
		if c.Ref == ref {
			return c, true
		}
	}
	return Component{}, false
}

// Nets returns the nets in first-seen order. The returned nets are the
// schematic's own instances.
func (s *Schematic) Nets() []*Net {
	out := make([]*Net, len(s.nets))
	copy(out, s.nets)
	return out
}

// FindNet returns the net with the given name, or false if there is none.
func (s *Schematic) FindNet(name string) (*Net, bool) {
	net, ok := s.byName[name]
	return net, ok
}

// GetOrCreateNet returns the net called name, creating and appending an empty
// one on first use. Repeated calls with the same name return the same *Net.
func (s *Schematic) GetOrCreateNet(name string) *Net {
	if net, ok := s.byName[name]; ok {
		return net
	}
	if s.byName == nil {
		s.byName = make(map[string]*Net)
	}
	net := newNet(name)
	s.nets = append(s.nets, net)
	s.byName[name] = net
	return net
}

// IsEmpty reports whether the schematic has neither components nor nets.
func (s *Schematic) IsEmpty() bool {
	return len(s.components) == 0 && len(s.nets) == 0
}

// Summary returns a one-line description used in logs and CLI output.
func (s *Schematic) Summary() string {
	return fmt.Sprintf("%d components, %d nets", len(s.components), len(s.nets))
}
