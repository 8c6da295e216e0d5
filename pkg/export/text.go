// Package export renders schematics as human-readable text, JSON, KiCad
// netlists and bills of materials.
package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

// Text writes a component table followed by one line per net.
func Text(w io.Writer, sch *schematic.Schematic) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Schematic: %s\n\n", sch.Summary())

	if comps := sch.Components(); len(comps) > 0 {
		fmt.Fprintln(tw, "Components:")
		for _, c := range comps {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Ref, c.PartNumber, c.Description)
		}
		fmt.Fprintln(tw)
	}

	if nets := sch.Nets(); len(nets) > 0 {
		fmt.Fprintln(tw, "Nets:")
		for _, n := range nets {
			fmt.Fprintf(tw, "  %s\tconnects [%s]\n", n.Name(), joinPins(n.Pins()))
		}
	}

	return tw.Flush()
}

func joinPins(pins []schematic.Pin) string {
	parts := make([]string, len(pins))
	for i, p := range pins {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
