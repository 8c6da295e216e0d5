package netlist

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/catalog"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/export"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/generator"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

func generated(t *testing.T) *schematic.Schematic {
	t.Helper()
	engine := generator.New(catalog.Default(),
		generator.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	sch, err := engine.Generate(requirement.NewPowerSupply("Main", 12, 5, 1))
	require.NoError(t, err)
	return sch
}

func TestParse(t *testing.T) {
	nodes, err := Parse(strings.NewReader("(a \"b c\" (d e))\n(f)"))
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, "a", nodes[0].Name())
	assert.Equal(t, `(a b c (d e))`, nodes[0].String())
	v, ok := nodes[0].Value("d")
	assert.True(t, ok)
	assert.Equal(t, "e", v)
	assert.Equal(t, 2, nodes[1].Line)
}

func TestParseEscapes(t *testing.T) {
	nodes, err := Parse(strings.NewReader(`(x "say \"hi\" \\ (ok)")`))
	require.NoError(t, err)
	assert.Equal(t, `say "hi" \ (ok)`, nodes[0].List[1].Atom)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"(a (b)":     "line 1: unclosed '('",
		"(a)\n)":     "line 2: unexpected ')'",
		"(a \"open)": "unterminated string",
	}
	for src, msg := range tests {
		_, err := Parse(strings.NewReader(src))
		require.Error(t, err, src)
		assert.Contains(t, err.Error(), msg, src)
	}
}

func TestRoundTrip(t *testing.T) {
	original := generated(t)

	nl, err := Read(strings.NewReader(export.KiCad(original, "main.ots")))
	require.NoError(t, err)

	assert.Equal(t, "D", nl.Version)
	assert.Equal(t, "main.ots", nl.Source)
	assert.Equal(t, export.Tool, nl.Tool)

	got := nl.Schematic
	assert.Equal(t, original.Components(), got.Components())
	require.Len(t, got.Nets(), len(original.Nets()))
	for i, n := range original.Nets() {
		assert.Equal(t, n.Name(), got.Nets()[i].Name())
		assert.Equal(t, n.Pins(), got.Nets()[i].Pins())
	}
	assert.NoError(t, got.Validate())
}

func TestReadKiCadLibsource(t *testing.T) {
	src := `(export (version "E")
  (design (source "/home/board.kicad_sch") (tool "Eeschema 8.0"))
  (components
    (comp (ref "R1") (value "10k")
      (libsource (lib "Device") (part "R") (description "Resistor"))))
  (nets
    (net (code "1") (name "/SIG")
      (node (ref "R1") (pin "1") (pintype "passive")))
    (net (code "2") (name "GND")
      (node (ref "R1") (pin "2") (pintype "passive")))))`

	nl, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "Eeschema 8.0", nl.Tool)

	r1, ok := nl.Schematic.FindComponent("R1")
	require.True(t, ok)
	assert.Equal(t, "Resistor", r1.Description)
	assert.Equal(t, "10k", r1.PartNumber)

	sig, ok := nl.Schematic.FindNet("/SIG")
	require.True(t, ok)
	assert.True(t, sig.Contains(schematic.Pin{Ref: "R1", Label: "1"}))
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"":                                       "expected one top-level expression, got 0",
		"(export) (export)":                      "expected one top-level expression, got 2",
		"(kicad_sch (version 1))":                "expected 'export', got 'kicad_sch'",
		"(export (components (comp (value x))))": "component without ref",
		"(export (nets (net (code 1))))":         "net without name",
		"(export (nets (net (name N) (node (ref U1)))))": "needs ref and pin",
		"(export": "unclosed",
	}
	for src, msg := range tests {
		_, err := Read(strings.NewReader(src))
		require.Error(t, err, src)
		assert.Contains(t, err.Error(), msg, src)
		assert.True(t, strings.HasPrefix(err.Error(), "netlist: "), src)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.net")
	require.NoError(t, os.WriteFile(path, []byte(export.KiCad(generated(t), "")), 0o644))

	nl, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3 components, 3 nets", nl.Schematic.Summary())

	_, err = ReadFile(filepath.Join(t.TempDir(), "nope.net"))
	assert.Error(t, err)
}

func TestShortedNets(t *testing.T) {
	assert.Empty(t, ShortedNets(generated(t)))

	sch := schematic.New()
	a := sch.GetOrCreateNet("A")
	b := sch.GetOrCreateNet("B")
	sch.GetOrCreateNet("C").AddConnection(schematic.Pin{Ref: "R9", Label: "1"})
	d := sch.GetOrCreateNet("D")
	e := sch.GetOrCreateNet("E")

	a.AddConnection(schematic.Pin{Ref: "U1", Label: "1"})
	b.AddConnection(schematic.Pin{Ref: "U1", Label: "2"})
	d.AddConnection(schematic.Pin{Ref: "U1", Label: "2"})
	e.AddConnection(schematic.Pin{Ref: "U1", Label: "1"})
	e.AddConnection(schematic.Pin{Ref: "U2", Label: "1"})

	assert.Equal(t, [][]string{{"A", "E"}, {"B", "D"}}, ShortedNets(sch))

	// a pin shared by E and D merges everything transitively
	d.AddConnection(schematic.Pin{Ref: "U2", Label: "1"})
	assert.Equal(t, [][]string{{"A", "B", "D", "E"}}, ShortedNets(sch))
}
