package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/planner"
)

var (
	planBlock  blockFlags
	planFormat string
	planOutput string
)

var planCmd = &cobra.Command{
	Use:   "plan <request>",
	Short: "Build a schematic from a planned command sequence",
	Long: `Turn a request into a build plan and fold it over an empty schematic.

The request is either free text, matched by keyword, or a plan script
listing the steps explicitly. Unknown requests give an empty schematic.

Examples:
  ots plan "I need a 5V power supply" --in 12
  ots plan "(plan add_regulator_5v add_output_capacitor)" --in 9 --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planBlock.register(planCmd)
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "text",
		"output format (text, json, kicad, bom, bom-csv)")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "write to file instead of stdout")
}

func runPlan(cmd *cobra.Command, args []string) (err error) {
	req, err := planBlock.requirement()
	if err != nil {
		return err
	}

	cat, _, closeCatalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeLogged("catalog", closeCatalog)

	orch, err := planner.NewOrchestrator(planner.NewRouter(logger),
		command.NewExecutor(cat, command.WithLogger(logger)), planner.WithLogger(logger))
	if err != nil {
		return err
	}

	request := strings.Join(args, " ")
	d, err := orch.Create(cmd.Context(), request, req)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Design %s\n", d.ID)
		fmt.Fprintf(cmd.ErrOrStderr(), "Plan: %s\n", strings.Join(command.Names(d.Plan), ", "))
	}

	w, closeOut, err := outputTo(cmd, planOutput)
	if err != nil {
		return err
	}
	defer closeWith(&err, closeOut)

	return writeSchematic(w, d.Schematic, planFormat, request)
}
