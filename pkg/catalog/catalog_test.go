package catalog

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	reg, ok := cat.Lookup("LM7805")
	require.True(t, ok)
	assert.Equal(t, "5V Positive Voltage Regulator", reg.Description)
	assert.Equal(t, []string{"IN", "GND", "OUT"}, reg.Pins)

	cin, ok := cat.Lookup("CAP_10uF")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, cin.Pins)

	_, ok = cat.Lookup("CAP_0.1uF")
	assert.True(t, ok)

	_, ok = cat.Lookup("NE555")
	assert.False(t, ok)

	var numbers []string
	for _, p := range cat.Parts() {
		numbers = append(numbers, p.Number)
	}
	assert.Equal(t, []string{"LM7805", "CAP_10uF", "CAP_0.1uF"}, numbers)
}

func TestDefaultCatalogIsNotShared(t *testing.T) {
	a := Default()
	a.Register(Part{Number: "LM7805", Description: "patched", Pins: []string{"1"}})

	p, _ := Default().Lookup("LM7805")
	assert.Equal(t, "5V Positive Voltage Regulator", p.Description)
}

func TestMemoryLookupReturnsCopy(t *testing.T) {
	cat := Default()
	p, _ := cat.Lookup("LM7805")
	p.Pins[0] = "VIN"

	again, _ := cat.Lookup("LM7805")
	assert.Equal(t, "IN", again.Pins[0])
}

func TestMemoryRegisterReplaces(t *testing.T) {
	cat := NewMemory(Part{Number: "R1K", Pins: []string{"1", "2"}})
	cat.Register(Part{Number: "R1K", Description: "1k resistor", Pins: []string{"1", "2"}})

	parts := cat.Parts()
	require.Len(t, parts, 1)
	assert.Equal(t, "1k resistor", parts[0].Description)
}

func TestPartValidate(t *testing.T) {
	assert.NoError(t, Part{Number: "X", Pins: []string{"1"}}.Validate())
	assert.ErrorContains(t, Part{Pins: []string{"1"}}.Validate(), "part number is empty")
	assert.ErrorContains(t, Part{Number: "X"}.Validate(), "has no pins")
	assert.ErrorContains(t, Part{Number: "X", Pins: []string{"1", ""}}.Validate(), "empty pin label")
	assert.ErrorContains(t, Part{Number: "X", Pins: []string{"1", "1"}}.Validate(), "repeats pin 1")
}

func TestStorePersistsParts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(Default().Parts()...))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	p, ok := store.Lookup("CAP_0.1uF")
	require.True(t, ok)
	assert.Equal(t, "0.1uF Ceramic Capacitor", p.Description)
	assert.Equal(t, []string{"1", "2"}, p.Pins)

	_, found, err := store.Get("NE555")
	require.NoError(t, err)
	assert.False(t, found)

	parts, err := store.Parts()
	require.NoError(t, err)
	var numbers []string
	for _, p := range parts {
		numbers = append(numbers, p.Number)
	}
	assert.Equal(t, []string{"CAP_0.1uF", "CAP_10uF", "LM7805"}, numbers)
}

func TestStoreRejectsInvalidParts(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer store.Close()

	err = store.Put(Part{Number: "OK", Pins: []string{"1"}}, Part{Number: "BAD"})
	require.Error(t, err)

	_, ok := store.Lookup("OK")
	assert.False(t, ok, "a rejected batch must not be partially stored")
}

func TestIndexSearch(t *testing.T) {
	idx, err := NewIndex(Default().Parts())
	require.NoError(t, err)
	defer idx.Close()

	parts, err := idx.Search("regulator")
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "LM7805", parts[0].Number)

	parts, err = idx.Search("capacitor")
	require.NoError(t, err)
	var numbers []string
	for _, p := range parts {
		numbers = append(numbers, p.Number)
	}
	assert.ElementsMatch(t, []string{"CAP_10uF", "CAP_0.1uF"}, numbers)

	parts, err = idx.Search("inductor")
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadXLSX(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Part Number", "Description", "Pins"},
		[]interface{}{"LM7805", "5V Positive Voltage Regulator", "IN, GND, OUT"},
		[]interface{}{"", "", ""},
		[]interface{}{"R10K", "10k Resistor", "1 2"},
	)

	parts, err := ReadXLSX(buf)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, Part{Number: "LM7805", Description: "5V Positive Voltage Regulator", Pins: []string{"IN", "GND", "OUT"}}, parts[0])
	assert.Equal(t, []string{"1", "2"}, parts[1].Pins)
}

func TestReadXLSXRejectsBadRows(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Part Number", "Description", "Pins"},
		[]interface{}{"LM7805", "regulator", ""},
	)

	_, err := ReadXLSX(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "has no pins")
}
