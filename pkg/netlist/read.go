// Package netlist reads KiCad netlists (export version D) back into
// schematics and analyses their connectivity.
package netlist

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

// Netlist is a parsed KiCad netlist.
type Netlist struct {
	Version   string
	Source    string
	Tool      string
	Schematic *schematic.Schematic
}

// ReadFile reads and parses the KiCad netlist at path.
func ReadFile(path string) (*Netlist, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netlist: failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses a KiCad netlist. Components, nets and node order are kept as
// written. Nodes naming unknown components are accepted; use
// Schematic.Validate to find them.
func Read(r io.Reader) (*Netlist, error) {
	nodes, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("netlist: %w", err)
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("netlist: expected one top-level expression, got %d", len(nodes))
	}

	root := nodes[0]
	if name := root.Name(); name != "export" {
		return nil, fmt.Errorf("netlist: not a KiCad netlist: expected 'export', got '%s'", name)
	}

	nl := &Netlist{Schematic: schematic.New()}
	nl.Version, _ = root.Value("version")
	if design, ok := root.Child("design"); ok {
		nl.Source, _ = design.Value("source")
		nl.Tool, _ = design.Value("tool")
	}

	if comps, ok := root.Child("components"); ok {
		for _, c := range comps.Children("comp") {
			comp, err := readComponent(c)
			if err != nil {
				return nil, err
			}
			nl.Schematic.AddComponent(comp)
		}
	}

	if nets, ok := root.Child("nets"); ok {
		for _, n := range nets.Children("net") {
			if err := readNet(n, nl.Schematic); err != nil {
				return nil, err
			}
		}
	}

	return nl, nil
}

func readComponent(n *Node) (schematic.Component, error) {
	ref, ok := n.Value("ref")
	if !ok || ref == "" {
		return schematic.Component{}, fmt.Errorf("netlist: line %d: component without ref", n.Line)
	}
	comp := schematic.Component{Ref: ref}
	comp.PartNumber, _ = n.Value("value")

	if desc, ok := n.Value("description"); ok {
		comp.Description = desc
	} else if lib, ok := n.Child("libsource"); ok {
		comp.Description, _ = lib.Value("description")
	}
	return comp, nil
}

func readNet(n *Node, sch *schematic.Schematic) error {
	name, ok := n.Value("name")
	if !ok || name == "" {
		return fmt.Errorf("netlist: line %d: net without name", n.Line)
	}
	net := sch.GetOrCreateNet(name)
	for _, node := range n.Children("node") {
		ref, okRef := node.Value("ref")
		pin, okPin := node.Value("pin")
		if !okRef || !okPin {
			return fmt.Errorf("netlist: line %d: node on net %s needs ref and pin", node.Line, name)
		}
		net.AddConnection(schematic.Pin{Ref: ref, Label: pin})
	}
	return nil
}
