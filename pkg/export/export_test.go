package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/catalog"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/generator"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

func regulator(t *testing.T) *schematic.Schematic {
	t.Helper()
	engine := generator.New(catalog.Default(),
		generator.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	sch, err := engine.Generate(requirement.NewPowerSupply("Main", 12, 5, 1))
	require.NoError(t, err)
	return sch
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, regulator(t)))
	out := buf.String()

	assert.Contains(t, out, "Schematic: 3 components, 3 nets")
	assert.Regexp(t, `U1\s+LM7805\s+5V Positive Voltage Regulator`, out)
	assert.Regexp(t, `C1\s+CAP_10uF\s+Input Capacitor \(10uF Electrolytic Capacitor\)`, out)
	assert.Regexp(t, `VIN_12\.0V\s+connects \[U1\.IN, C1\.1\]`, out)
	assert.Regexp(t, `GND\s+connects \[U1\.GND, C1\.2, C2\.2\]`, out)
	assert.Less(t, strings.Index(out, "Components:"), strings.Index(out, "Nets:"))
}

func TestTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, schematic.New()))
	assert.Equal(t, "Schematic: 0 components, 0 nets\n\n", buf.String())
}

func TestJSON(t *testing.T) {
	data, err := JSON(regulator(t))
	require.NoError(t, err)

	var doc struct {
		Components []map[string]string `json:"components"`
		Nets       []struct {
			Name string              `json:"name"`
			Pins []map[string]string `json:"pins"`
		} `json:"nets"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Len(t, doc.Components, 3)
	assert.Equal(t, map[string]string{
		"ref":         "C2",
		"part_number": "CAP_0.1uF",
		"description": "Output Capacitor (0.1uF Ceramic Capacitor)",
	}, doc.Components[2])

	require.Len(t, doc.Nets, 3)
	assert.Equal(t, "VOUT_5.0V", doc.Nets[1].Name)
	assert.Equal(t, []map[string]string{
		{"ref": "U1", "pin": "OUT"},
		{"ref": "C2", "pin": "1"},
	}, doc.Nets[1].Pins)
}

func TestJSONEmptyCollections(t *testing.T) {
	data, err := JSON(schematic.New())
	require.NoError(t, err)
	assert.JSONEq(t, `{"components":[],"nets":[]}`, string(data))
}

func TestKiCad(t *testing.T) {
	out := KiCad(regulator(t), "main.ots")

	assert.True(t, strings.HasPrefix(out, `(export (version "D")`))
	assert.Contains(t, out, `(source "main.ots")`)
	assert.Contains(t, out, `(comp (ref "U1")`)
	assert.Contains(t, out, `(value "CAP_0.1uF")`)
	assert.Contains(t, out, `(net (code "1") (name "VIN_12.0V")`)
	assert.Contains(t, out, `(net (code "3") (name "GND")`)
	assert.Contains(t, out, `(node (ref "C2") (pin "2"))`)
	assert.Equal(t, strings.Count(out, "("), strings.Count(out, ")"))
}

func TestKiCadQuoting(t *testing.T) {
	sch := schematic.New()
	sch.AddComponent(schematic.Component{Ref: "J1", PartNumber: "HDR", Description: `2.54mm "pin" header \ 1x2`})
	out := KiCad(sch, "")
	assert.Contains(t, out, `(description "2.54mm \"pin\" header \\ 1x2")`)
}

func TestBOMEntries(t *testing.T) {
	sch := schematic.New()
	for _, c := range []schematic.Component{
		{Ref: "C10", PartNumber: "CAP_0.1uF", Description: "decoupling"},
		{Ref: "U1", PartNumber: "LM7805", Description: "regulator"},
		{Ref: "C2", PartNumber: "CAP_0.1uF", Description: "output"},
	} {
		sch.AddComponent(c)
	}

	entries := BOMEntries(sch)
	require.Len(t, entries, 2)
	assert.Equal(t, "CAP_0.1uF", entries[0].PartNumber)
	assert.Equal(t, []string{"C2", "C10"}, entries[0].Designators)
	assert.Equal(t, "decoupling", entries[0].Description)
	assert.Equal(t, []string{"U1"}, entries[1].Designators)
}

func TestBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, BOM(&buf, regulator(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{BOMSheet}, f.GetSheetList())
	rows, err := f.GetRows(BOMSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, bomHeader, rows[0])
	assert.Equal(t, []string{"1", "U1", "1", "LM7805", "5V Positive Voltage Regulator"}, rows[1])
	assert.Equal(t, "CAP_10uF", rows[2][3])
}

func TestBOMCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, BOMCSV(&buf, regulator(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"3", "C2", "1", "CAP_0.1uF", "Output Capacitor (0.1uF Ceramic Capacitor)"}, rows[3])
}
