package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/export"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

// Output formats accepted by --format.
var formats = []string{"text", "json", "kicad", "bom", "bom-csv"}

func writeSchematic(w io.Writer, sch *schematic.Schematic, format, source string) error {
	switch format {
	case "text":
		return export.Text(w, sch)
	case "json":
		data, err := export.JSON(sch)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "kicad":
		_, err := io.WriteString(w, export.KiCad(sch, source))
		return err
	case "bom":
		return export.BOM(w, sch)
	case "bom-csv":
		return export.BOMCSV(w, sch)
	default:
		return fmt.Errorf("unknown format %q (want one of %v)", format, formats)
	}
}

// outputTo opens path for writing, or returns the command's stdout when path
// is empty.
func outputTo(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, f.Close, nil
}

// closeWith closes a resource written by the command and keeps the first
// error of the run.
func closeWith(err *error, close func() error) {
	if cerr := close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// closeLogged closes a resource that was only read; a failure is logged.
func closeLogged(what string, close func() error) {
	if err := close(); err != nil {
		logger.Debug("close failed", "resource", what, "error", err)
	}
}

// blockFlags are the power supply fields shared by generate and plan.
type blockFlags struct {
	name     string
	in       float64
	out      float64
	current  float64
	features string
}

func (b *blockFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&b.name, "name", "n", "Main Supply", "power supply block name")
	cmd.Flags().Float64Var(&b.in, "in", 12.0, "input voltage in volts")
	cmd.Flags().Float64Var(&b.out, "out", 5.0, "output voltage in volts")
	cmd.Flags().Float64Var(&b.current, "current", 1.0, "maximum output current in amperes")
	cmd.Flags().StringVar(&b.features, "protect", "", "protection features, comma separated")
}

func (b *blockFlags) requirement() (requirement.PowerSupply, error) {
	req := requirement.NewPowerSupply(b.name, b.in, b.out, b.current,
		requirement.ParseFeatures(b.features)...)
	if err := req.Check(); err != nil {
		return requirement.PowerSupply{}, fmt.Errorf("invalid block: %w", err)
	}
	return req, nil
}
