package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/generator"
)

var (
	generateBlock  blockFlags
	generateFormat string
	generateOutput string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a schematic by topology rule matching",
	Long: `Validate a power supply requirement and build the schematic of the first
topology rule that accepts it.

Examples:
  ots generate --in 12 --out 5 --current 1.5
  ots generate --in 9 --out 5 --format kicad -o main.net
  ots generate --in 12 --out 3.3            # fails: no rule for 3.3V`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateBlock.register(generateCmd)
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "text",
		"output format (text, json, kicad, bom, bom-csv)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write to file instead of stdout")
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	req, err := generateBlock.requirement()
	if err != nil {
		return err
	}

	cat, _, closeCatalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeLogged("catalog", closeCatalog)

	sch, err := generator.New(cat, generator.WithLogger(logger)).Generate(req)
	if err != nil {
		return err
	}

	w, closeOut, err := outputTo(cmd, generateOutput)
	if err != nil {
		return err
	}
	defer closeWith(&err, closeOut)

	return writeSchematic(w, sch, generateFormat, req.BlockName)
}
