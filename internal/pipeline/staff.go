package pipeline

import (
	"fmt"
	"strings"

	"schedproc/internal"
	"schedproc/internal/sheet"
)

const unavailable = "Unavailable"

// BuildStaffRecord normalizes one staff availability grid. Each day merges
// the first marked row's start and the last marked row's end into a single
// 24-hour range; days with no marked rows (or no column at all) read
// "Unavailable".
func BuildStaffRecord(g internal.Grid, fileName string, isSupervisor bool) (internal.StaffRecord, error) {
	header, headerIdx, ok := sheet.FindRow(g, sheet.IsStaffHeader)
	if !ok {
		return internal.StaffRecord{}, &sheet.MissingHeaderError{File: fileName}
	}

	rec := internal.StaffRecord{ProgramSupervisor: isSupervisor, TimeOff: "None"}

	if row, _, ok := sheet.FindRowByRole(g, sheet.RowName); ok {
		rec.Name = sheet.SecondCell(row)
	} else {
		rec.Name = sheet.NameFromFileName(fileName)
	}

	if row, _, ok := sheet.FindRowByRole(g, sheet.RowTimeOff); ok {
		if timeOff := sheet.SecondCell(row); timeOff != "" {
			rec.TimeOff = timeOff
		}
	}

	dataRows := g[headerIdx+1:]
	for d, day := range internal.DayAbbrevs {
		col := sheet.ColumnOf(header, day)
		if col < 0 {
			rec.Days[d] = unavailable
			continue
		}

		var labels []string
		for _, row := range dataRows {
			if col < len(row) && sheet.IsAvailable(row[col]) {
				labels = append(labels, sheet.FirstCell(row))
			}
		}
		if len(labels) == 0 {
			rec.Days[d] = unavailable
			continue
		}

		merged, err := mergeRange(labels[0], labels[len(labels)-1])
		if err != nil {
			return internal.StaffRecord{}, err
		}
		rec.Days[d] = merged
	}

	return rec, nil
}

// mergeRange takes the start of the first label and the end of the last,
// converting both to 24-hour form.
func mergeRange(first, last string) (string, error) {
	firstParts := strings.Split(first, " - ")
	lastParts := strings.Split(last, " - ")
	if len(firstParts) != 2 {
		return "", &sheet.SlotParseError{Label: first, Cause: fmt.Errorf("expected two sides around \" - \"")}
	}
	if len(lastParts) != 2 {
		return "", &sheet.SlotParseError{Label: last, Cause: fmt.Errorf("expected two sides around \" - \"")}
	}

	start, err := sheet.ConvertTo24Hr(firstParts[0])
	if err != nil {
		return "", err
	}
	end, err := sheet.ConvertTo24Hr(lastParts[1])
	if err != nil {
		return "", err
	}
	return start + " - " + end, nil
}
