package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Component catalog operations",
	Long: `Commands for listing, searching and populating the component catalog.

Without --catalog (or $OTS_CATALOG) the built-in parts are used. Import and
init need a bolt catalog file.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog parts",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Full-text search over part numbers and descriptions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogSearch,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <parts.xlsx>",
	Short: "Import parts from a spreadsheet into the bolt catalog",
	Long: `Read the first sheet of an xlsx workbook and store its parts.
Columns: Part Number | Description | Pins (comma or space separated).
The first row is a header. Existing parts with the same number are replaced.

Example:
  ots catalog import --catalog parts.db regulators.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

var catalogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the bolt catalog with the built-in parts",
	Args:  cobra.NoArgs,
	RunE:  runCatalogInit,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogInitCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	_, parts, closeCatalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeLogged("catalog", closeCatalog)

	return printParts(cmd, parts)
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	_, parts, closeCatalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeLogged("catalog", closeCatalog)

	index, err := catalog.NewIndex(parts)
	if err != nil {
		return err
	}
	defer closeLogged("catalog index", index.Close)

	found, err := index.Search(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching parts.")
		return nil
	}
	return printParts(cmd, found)
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	parts, err := catalog.ImportXLSX(args[0])
	if err != nil {
		return err
	}
	n, err := storeParts(parts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d parts into %s\n", n, cfg.CatalogPath)
	return nil
}

func runCatalogInit(cmd *cobra.Command, args []string) error {
	n, err := storeParts(catalog.Default().Parts())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored %d built-in parts in %s\n", n, cfg.CatalogPath)
	return nil
}

func storeParts(parts []catalog.Part) (n int, err error) {
	if cfg.CatalogPath == "" {
		return 0, errors.New("a bolt catalog file is required: pass --catalog or set $OTS_CATALOG")
	}
	store, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return 0, err
	}
	defer closeWith(&err, store.Close)

	if err := store.Put(parts...); err != nil {
		return 0, err
	}
	return len(parts), nil
}

func printParts(cmd *cobra.Command, parts []catalog.Part) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PART\tPINS\tDESCRIPTION")
	for _, p := range parts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Number, strings.Join(p.Pins, ","), p.Description)
	}
	return tw.Flush()
}
