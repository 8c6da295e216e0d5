package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSynth/internal/config"
	"github.com/OpenTraceLab/OpenTraceSynth/internal/logging"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/catalog"
)

var (
	// Global flags
	verbose     bool
	catalogPath string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ots",
	Short: "OpenTraceSynth - rule-based power supply schematic synthesis",
	Long: `OpenTraceSynth (ots) turns power supply requirements into validated netlists:
  - one-shot generation by matching topology rules
  - plan-driven builds from a request or a plan script
  - design files describing a project and its supply blocks
  - KiCad netlist, JSON and BOM export

Examples:
  ots generate --in 12 --out 5 --current 1.5     # LM7805 regulator netlist
  ots plan "5V power supply" --in 9 --out 5      # keyword planner
  ots design station.ots --format kicad          # every block in a design file
  ots serve                                      # HTTP API on $OTS_ADDR`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"bolt catalog file (default $"+config.EnvCatalog+", else built-in parts)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.FromEnv(); err != nil {
		return err
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	logger = logging.New(cmd.ErrOrStderr(), logging.Level(verbose, cfg.LogLevel))
	return nil
}

// openCatalog returns the configured catalog and its parts. close must be
// called when done.
func openCatalog() (cat catalog.Catalog, parts []catalog.Part, close func() error, err error) {
	if cfg.CatalogPath == "" {
		mem := catalog.Default()
		return mem, mem.Parts(), func() error { return nil }, nil
	}

	store, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return nil, nil, nil, err
	}
	parts, err = store.Parts()
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	return store, parts, store.Close, nil
}
