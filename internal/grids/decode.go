// Package grids turns downloaded spreadsheet blobs into typed cell grids
// and caches them by file ID for the lifetime of the process.
package grids

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"schedproc/internal"
)

// Decode picks the decoder from the file's MIME type, falling back to the
// name extension. Drive exports native Sheets as xlsx before we see them.
func Decode(file internal.DriveFile, blob []byte) (internal.Grid, error) {
	switch {
	case file.MimeType == "text/csv" || strings.HasSuffix(strings.ToLower(file.Name), ".csv"):
		return DecodeCSV(blob)
	default:
		return DecodeXLSX(blob)
	}
}

// DecodeXLSX reads the first worksheet into a Grid, preserving cell types:
// boolean cells decode to bool, numeric cells to float64, everything else
// to string. The true/"TRUE" distinction matters downstream.
func DecodeXLSX(blob []byte) (internal.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	grid := make(internal.Grid, len(rows))
	for r, row := range rows {
		cells := make(internal.Row, len(row))
		for c, value := range row {
			cellName, _ := excelize.CoordinatesToCellName(c+1, r+1)
			cellType, _ := f.GetCellType(sheetName, cellName)
			cells[c] = typedCell(value, cellType)
		}
		grid[r] = cells
	}
	return grid, nil
}

func typedCell(value string, cellType excelize.CellType) internal.Cell {
	switch cellType {
	case excelize.CellTypeBool:
		return value == "TRUE" || value == "1"
	case excelize.CellTypeNumber:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return value
}

// DecodeCSV reads a comma-separated blob into an all-string Grid. Ragged
// rows are kept as-is.
func DecodeCSV(blob []byte) (internal.Grid, error) {
	reader := csv.NewReader(bytes.NewReader(blob))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	grid := make(internal.Grid, len(rows))
	for r, row := range rows {
		cells := make(internal.Row, len(row))
		for c, value := range row {
			cells[c] = value
		}
		grid[r] = cells
	}
	return grid, nil
}
