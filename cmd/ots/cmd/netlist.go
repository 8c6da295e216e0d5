package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/export"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/netlist"
)

var netlistCmd = &cobra.Command{
	Use:   "netlist",
	Short: "KiCad netlist operations",
	Long:  `Commands for reading and checking KiCad netlists (.net)`,
}

var netlistInfoCmd = &cobra.Command{
	Use:   "info <netlist_file>",
	Short: "Show the components and nets of a netlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runNetlistInfo,
}

var netlistCheckCmd = &cobra.Command{
	Use:   "check <netlist_file>",
	Short: "Check a netlist for shorts, duplicate designators and dangling pins",
	Args:  cobra.ExactArgs(1),
	RunE:  runNetlistCheck,
}

func init() {
	rootCmd.AddCommand(netlistCmd)
	netlistCmd.AddCommand(netlistInfoCmd)
	netlistCmd.AddCommand(netlistCheckCmd)
}

func runNetlistInfo(cmd *cobra.Command, args []string) error {
	nl, err := netlist.ReadFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Netlist: %s\n", args[0])
	if nl.Version != "" {
		fmt.Fprintf(out, "Version: %s\n", nl.Version)
	}
	if nl.Tool != "" {
		fmt.Fprintf(out, "Tool: %s\n", nl.Tool)
	}
	if nl.Source != "" {
		fmt.Fprintf(out, "Source: %s\n", nl.Source)
	}
	fmt.Fprintln(out)
	return export.Text(out, nl.Schematic)
}

func runNetlistCheck(cmd *cobra.Command, args []string) error {
	nl, err := netlist.ReadFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	problems := 0
	if err := nl.Schematic.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(out, "  %s\n", line)
			problems++
		}
	}
	for _, group := range netlist.ShortedNets(nl.Schematic) {
		fmt.Fprintf(out, "  shorted nets: %s\n", strings.Join(group, ", "))
		problems++
	}

	if problems > 0 {
		return fmt.Errorf("%s: %d problem(s) found", args[0], problems)
	}
	fmt.Fprintf(out, "%s: OK (%s)\n", args[0], nl.Schematic.Summary())
	return nil
}
