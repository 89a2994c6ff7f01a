// Package sheet implements the tabular-to-structured normalization engine:
// heuristics that locate semantic rows inside free-form availability sheets,
// time-slot parsing, and the AM/PM consolidation algorithm.
package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"schedproc/internal"
)

// RowRole names a semantic row recognized inside a sheet by a substring
// marker in its first cell.
type RowRole int

const (
	RowName RowRole = iota
	RowTimeOff
	RowAddress
)

// rowMarkers drives FindRowByRole. Supporting a new sheet layout means
// adding a marker here, not branching in the builders.
var rowMarkers = map[RowRole][]string{
	RowName:    {"initial"},
	RowTimeOff: {"vacation", "time off"},
	RowAddress: {"address"},
}

// MissingHeaderError means a grid has no recognizable header row; the file
// cannot be interpreted and is skipped by the builders.
type MissingHeaderError struct {
	File string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("no recognizable header row in %s", e.File)
}

// CellString renders a cell the way marker matching sees it. Boolean cells
// stringify to the spreadsheet "TRUE"/"FALSE" form.
func CellString(c internal.Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// CellContains reports case-insensitive substring containment on the
// stringified cell.
func CellContains(c internal.Cell, sub string) bool {
	return strings.Contains(strings.ToLower(CellString(c)), strings.ToLower(sub))
}

// FirstCell and SecondCell return trimmed stringified cells, tolerating
// short rows.
func FirstCell(row internal.Row) string { return cellAt(row, 0) }

func SecondCell(row internal.Row) string { return cellAt(row, 1) }

func cellAt(row internal.Row, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(CellString(row[idx]))
}

// FindRow returns the first row matching pred in top-to-bottom order.
func FindRow(g internal.Grid, pred func(internal.Row) bool) (internal.Row, int, bool) {
	for i, row := range g {
		if pred(row) {
			return row, i, true
		}
	}
	return nil, -1, false
}

// FindRowByRole locates the first row whose first cell contains one of the
// role's markers.
func FindRowByRole(g internal.Grid, role RowRole) (internal.Row, int, bool) {
	markers := rowMarkers[role]
	return FindRow(g, func(row internal.Row) bool {
		if len(row) == 0 {
			return false
		}
		for _, m := range markers {
			if CellContains(row[0], m) {
				return true
			}
		}
		return false
	})
}

// RowHasCell reports whether any cell in the row stringifies exactly to
// value after trimming.
func RowHasCell(row internal.Row, value string) bool {
	for _, c := range row {
		if strings.TrimSpace(CellString(c)) == value {
			return true
		}
	}
	return false
}

// IsClientHeader matches the client sheet header: second cell is the fixed
// "Home/School" label and the row carries the day abbreviations.
func IsClientHeader(row internal.Row) bool {
	return SecondCell(row) == "Home/School" && RowHasCell(row, "Mon")
}

// IsStaffHeader matches the staff sheet header row.
func IsStaffHeader(row internal.Row) bool {
	return RowHasCell(row, "Mon") && RowHasCell(row, "Tue")
}

// DayColumn finds the column whose header cell contains the 3-letter
// abbreviation of day, or -1.
func DayColumn(header internal.Row, day string) int {
	abbrev := day
	if len(abbrev) > 3 {
		abbrev = abbrev[:3]
	}
	for i, c := range header {
		if strings.Contains(CellString(c), abbrev) {
			return i
		}
	}
	return -1
}

// ColumnOf finds the column whose header cell equals value exactly, or -1.
func ColumnOf(header internal.Row, value string) int {
	for i, c := range header {
		if strings.TrimSpace(CellString(c)) == value {
			return i
		}
	}
	return -1
}

// IsAvailable reports whether a cell marks its slot as available. Both the
// native boolean and the string "TRUE" are accepted; spreadsheet exports
// produce either depending on the source format.
func IsAvailable(c internal.Cell) bool {
	if b, ok := c.(bool); ok {
		return b
	}
	s, ok := c.(string)
	return ok && s == "TRUE"
}

var fileTokenRe = regexp.MustCompile(`_(\w+)\.`)

// NameFromFileName extracts the token between "_" and "." from a file name,
// the conventional place for a person's initials, else "Unknown".
func NameFromFileName(name string) string {
	if m := fileTokenRe.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return "Unknown"
}
