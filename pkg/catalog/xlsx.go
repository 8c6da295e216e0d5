package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

/*
	Spreadsheet layout, first sheet, one header row:

	Part Number	Description	Pins
	LM7805	5V Positive Voltage Regulator	IN, GND, OUT
	CAP_10uF	10uF Electrolytic Capacitor	1 2
*/

// ImportXLSX reads parts from the spreadsheet at path.
func ImportXLSX(path string) ([]Part, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer fp.Close()

	return ReadXLSX(fp)
}

// ReadXLSX reads parts from a spreadsheet. Blank rows are skipped; every
// other row must describe a valid part.
func ReadXLSX(r io.Reader) ([]Part, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("catalog: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("catalog: read sheet %s: %w", sheets[0], err)
	}

	var parts []Part
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		p := Part{
			Number:      cell(row, 0),
			Description: cell(row, 1),
			Pins:        splitPins(cell(row, 2)),
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// cell returns column i of row; trailing empty cells are not stored.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitPins(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
