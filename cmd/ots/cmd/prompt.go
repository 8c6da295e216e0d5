package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/export"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/generator"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Enter project and power supply requirements interactively",
	Long: `Ask for the project constraints and any number of power supply blocks,
then generate a schematic for each block.`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

// asker shows a question and returns the answer line.
type asker func(question string, suggestions []prompt.Suggest) string

// mandatory fields are asked again this many times before giving up
const maxAttempts = 3

var (
	yesNo = []prompt.Suggest{
		{Text: "yes", Description: "add another block"},
		{Text: "no", Description: "finish and generate"},
	}
	featureSuggestions = []prompt.Suggest{
		{Text: "short-circuit"},
		{Text: "over-voltage"},
		{Text: "over-current"},
		{Text: "reverse-polarity"},
		{Text: "thermal-shutdown"},
	}
)

func terminalAsker(question string, suggestions []prompt.Suggest) string {
	fmt.Println(question)
	return prompt.Input("> ", func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
	})
}

func runPrompt(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	proj, blocks, err := interview(terminalAsker, out)
	if err != nil {
		return err
	}

	cat, _, closeCatalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeLogged("catalog", closeCatalog)

	engine := generator.New(cat, generator.WithLogger(logger))
	fmt.Fprintf(out, "\nProject: %s\n", proj.Name)
	if len(blocks) == 0 {
		fmt.Fprintln(out, "No power supply blocks were added.")
		return nil
	}
	for _, blk := range blocks {
		fmt.Fprintf(out, "\n== %s ==\n", blk)
		sch, err := engine.Generate(blk)
		if err != nil {
			fmt.Fprintf(out, "  %v\n", err)
			continue
		}
		if err := export.Text(out, sch); err != nil {
			return err
		}
	}
	return nil
}

// interview collects a project and its power supply blocks.
func interview(ask asker, out io.Writer) (requirement.Project, []requirement.PowerSupply, error) {
	var proj requirement.Project
	var err error

	proj.Name, err = askText(ask, out, "Enter project name:", "Project name")
	if err != nil {
		return proj, nil, err
	}
	if proj.MaxLengthMM, err = askOptionalFloat(ask, out, "Maximum PCB length in mm (Enter to skip):"); err != nil {
		return proj, nil, err
	}
	if proj.MaxWidthMM, err = askOptionalFloat(ask, out, "Maximum PCB width in mm (Enter to skip):"); err != nil {
		return proj, nil, err
	}
	if proj.TargetCostUSD, err = askOptionalFloat(ask, out, "Target manufacturing cost in USD (Enter to skip):"); err != nil {
		return proj, nil, err
	}
	if err := proj.Check(); err != nil {
		return proj, nil, err
	}

	blocks := []requirement.PowerSupply{}
	for {
		answer := strings.ToLower(strings.TrimSpace(ask("Add a power supply block? (yes/no)", yesNo)))
		if answer != "yes" && answer != "y" {
			break
		}
		blk, err := askBlock(ask, out)
		if err != nil {
			fmt.Fprintf(out, "Skipping block: %v\n", err)
			continue
		}
		blocks = append(blocks, blk)
	}
	return proj, blocks, nil
}

func askBlock(ask asker, out io.Writer) (requirement.PowerSupply, error) {
	name, err := askText(ask, out, "Power supply block name (e.g. Main 5V Rail):", "Block name")
	if err != nil {
		return requirement.PowerSupply{}, err
	}
	in, err := askFloat(ask, out, "Input voltage in volts (e.g. 12.0):")
	if err != nil {
		return requirement.PowerSupply{}, err
	}
	vout, err := askFloat(ask, out, "Output voltage in volts (e.g. 5.0):")
	if err != nil {
		return requirement.PowerSupply{}, err
	}
	current, err := askFloat(ask, out, "Maximum output current in amperes (e.g. 1.5):")
	if err != nil {
		return requirement.PowerSupply{}, err
	}
	features := requirement.ParseFeatures(ask("Protection features, comma separated (optional):", featureSuggestions))

	blk := requirement.NewPowerSupply(name, in, vout, current, features...)
	if err := blk.Check(); err != nil {
		return requirement.PowerSupply{}, err
	}
	return blk, nil
}

func askText(ask asker, out io.Writer, question, field string) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		if v := strings.TrimSpace(ask(question, nil)); v != "" {
			return v, nil
		}
		fmt.Fprintf(out, "%s cannot be empty. Please try again.\n", field)
	}
	return "", fmt.Errorf("no value given for %s", strings.ToLower(field))
}

func askFloat(ask asker, out io.Writer, question string) (float64, error) {
	for i := 0; i < maxAttempts; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(ask(question, nil)), 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(out, "Invalid input. Please enter a number (e.g. 10.5).")
	}
	return 0, fmt.Errorf("no valid number for %q", question)
}

func askOptionalFloat(ask asker, out io.Writer, question string) (*float64, error) {
	for i := 0; i < maxAttempts; i++ {
		s := strings.TrimSpace(ask(question, nil))
		if s == "" {
			return nil, nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return &v, nil
		}
		fmt.Fprintln(out, "Invalid input. Please enter a number or leave blank.")
	}
	return nil, fmt.Errorf("no valid number for %q", question)
}
