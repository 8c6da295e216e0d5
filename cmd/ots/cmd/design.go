package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/designfile"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/generator"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

var (
	designFormat string
	designOutDir string
)

var designCmd = &cobra.Command{
	Use:   "design <file.ots>",
	Short: "Build every power supply block of a design file",
	Long: `Load a design file and build one schematic per block. Blocks with a
plan line are built from that plan; the others go through rule matching.
Each block is built independently, so one failing block does not stop
the rest.

Examples:
  ots design station.ots
  ots design station.ots --format kicad --out-dir build/`,
	Args: cobra.ExactArgs(1),
	RunE: runDesign,
}

func init() {
	rootCmd.AddCommand(designCmd)
	designCmd.Flags().StringVarP(&designFormat, "format", "f", "text",
		"output format (text, json, kicad, bom, bom-csv)")
	designCmd.Flags().StringVar(&designOutDir, "out-dir", "",
		"write one file per block into this directory")
}

func runDesign(cmd *cobra.Command, args []string) error {
	doc, err := designfile.LoadFile(args[0])
	if err != nil {
		return err
	}

	cat, _, closeCatalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeLogged("catalog", closeCatalog)

	engine := generator.New(cat, generator.WithLogger(logger))
	exec := command.NewExecutor(cat, command.WithLogger(logger))

	out := cmd.OutOrStdout()
	if doc.Project != nil {
		fmt.Fprintf(out, "Project: %s\n", doc.Project.Name)
		printLimit(cmd, "Max length", doc.Project.MaxLengthMM, "mm")
		printLimit(cmd, "Max width", doc.Project.MaxWidthMM, "mm")
		printLimit(cmd, "Target cost", doc.Project.TargetCostUSD, "USD")
		fmt.Fprintln(out)
	}

	failed := 0
	for _, blk := range doc.Blocks {
		fmt.Fprintf(out, "== %s ==\n", blk.Requirement)

		sch, err := buildBlock(engine, exec, blk)
		if err != nil {
			failed++
			fmt.Fprintf(out, "  %v\n\n", err)
			continue
		}

		if designOutDir != "" {
			path := filepath.Join(designOutDir, fileStem(blk.Requirement.BlockName)+extension(designFormat))
			if err := writeBlockFile(cmd, path, sch, blk.Requirement.BlockName); err != nil {
				return err
			}
			fmt.Fprintf(out, "  wrote %s\n\n", path)
			continue
		}
		if err := writeSchematic(out, sch, designFormat, blk.Requirement.BlockName); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d blocks failed", failed, len(doc.Blocks))
	}
	return nil
}

func buildBlock(engine *generator.Engine, exec *command.Executor, blk designfile.Block) (*schematic.Schematic, error) {
	if !blk.HasPlan {
		return engine.Generate(blk.Requirement)
	}
	sch := schematic.New()
	for _, c := range blk.Plan {
		if err := exec.Build(c, sch, blk.Requirement); err != nil {
			return nil, fmt.Errorf("step %s: %w", c, err)
		}
	}
	return sch, nil
}

func writeBlockFile(cmd *cobra.Command, path string, sch *schematic.Schematic, source string) error {
	w, closeOut, err := outputTo(cmd, path)
	if err != nil {
		return err
	}
	if err := writeSchematic(w, sch, designFormat, source); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func printLimit(cmd *cobra.Command, label string, v *float64, unit string) {
	if v != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %g %s\n", label, *v, unit)
	}
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// fileStem turns a block name into a file name: "Main 5V Rail" -> "main_5v_rail".
func fileStem(name string) string {
	stem := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if stem == "" {
		return "block"
	}
	return stem
}

func extension(format string) string {
	switch format {
	case "json":
		return ".json"
	case "kicad":
		return ".net"
	case "bom":
		return ".xlsx"
	case "bom-csv":
		return ".csv"
	default:
		return ".txt"
	}
}
