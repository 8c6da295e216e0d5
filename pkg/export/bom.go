package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

// BOMSheet is the worksheet name used by BOM.
const BOMSheet = "BOM"

var bomHeader = []string{"Item", "Designators", "Quantity", "Part Number", "Description"}

// BOMEntry is one line of a bill of materials.
type BOMEntry struct {
	PartNumber  string
	Description string
	Designators []string
}

// BOMEntries groups components by part number in first-seen order.
// Designators within an entry are sorted by prefix then number.
func BOMEntries(sch *schematic.Schematic) []*BOMEntry {
	var entries []*BOMEntry
	byPart := make(map[string]*BOMEntry)
	for _, c := range sch.Components() {
		entry, ok := byPart[c.PartNumber]
		if !ok {
			entry = &BOMEntry{PartNumber: c.PartNumber, Description: c.Description}
			byPart[c.PartNumber] = entry
			entries = append(entries, entry)
		}
		entry.Designators = append(entry.Designators, c.Ref)
	}
	for _, e := range entries {
		sort.SliceStable(e.Designators, func(i, j int) bool {
			return lessRef(e.Designators[i], e.Designators[j])
		})
	}
	return entries
}

func bomRows(sch *schematic.Schematic) [][]string {
	var rows [][]string
	for i, e := range BOMEntries(sch) {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strings.Join(e.Designators, ","),
			strconv.Itoa(len(e.Designators)),
			e.PartNumber,
			e.Description,
		})
	}
	return rows
}

// BOM writes an xlsx workbook with a single BOM sheet.
func BOM(w io.Writer, sch *schematic.Schematic) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BOMSheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	for i, row := range append([][]string{bomHeader}, bomRows(sch)...) {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(BOMSheet, axis, &cells); err != nil {
			return fmt.Errorf("export: writing BOM row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: writing workbook: %w", err)
	}
	return nil
}

// BOMCSV writes the same rows as BOM in CSV form.
func BOMCSV(w io.Writer, sch *schematic.Schematic) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bomHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(bomRows(sch)); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// lessRef orders designators like C2 before C10.
func lessRef(a, b string) bool {
	pa, na := splitRef(a)
	pb, nb := splitRef(b)
	if pa != pb {
		return pa < pb
	}
	if na != nb {
		return na < nb
	}
	return a < b
}

// splitRef extracts the letter prefix and trailing number of a designator.
func splitRef(ref string) (string, int) {
	for i, c := range ref {
		if c >= '0' && c <= '9' {
			n, err := strconv.Atoi(ref[i:])
			if err != nil {
				return ref, 0
			}
			return ref[:i], n
		}
	}
	return ref, 0
}
