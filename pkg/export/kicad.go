package export

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

// Tool is written into the design header of exported netlists.
const Tool = "OpenTraceSynth"

// KiCad renders sch as a KiCad netlist (export version D). Nets are numbered
// from 1 in schematic order; empty nets are kept so names survive a round trip.
func KiCad(sch *schematic.Schematic, source string) string {
	var b strings.Builder

	b.WriteString("(export (version \"D\")\n")
	b.WriteString("  (design\n")
	fmt.Fprintf(&b, "    (source %s)\n", quote(source))
	fmt.Fprintf(&b, "    (tool %s))\n", quote(Tool))

	b.WriteString("  (components")
	for _, c := range sch.Components() {
		fmt.Fprintf(&b, "\n    (comp (ref %s)\n      (value %s)\n      (description %s))",
			quote(c.Ref), quote(c.PartNumber), quote(c.Description))
	}
	b.WriteString(")\n")

	b.WriteString("  (nets")
	for i, n := range sch.Nets() {
		fmt.Fprintf(&b, "\n    (net (code \"%d\") (name %s)", i+1, quote(n.Name()))
		for _, p := range n.Pins() {
			fmt.Fprintf(&b, "\n      (node (ref %s) (pin %s))", quote(p.Ref), quote(p.Label))
		}
		b.WriteString(")")
	}
	b.WriteString("))\n")

	return b.String()
}

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}
