// Package pipeline orchestrates the record builders over Drive folders and
// writes the resulting sheets.
package pipeline

import (
	"strings"

	"schedproc/internal"
	"schedproc/internal/sheet"
)

const clientNameLabel = "Client Initials"

// BuildClientRecord normalizes one client availability grid into a weekly
// AM/PM record. A grid without the client header row is unusable and
// returns MissingHeaderError; a malformed time label aborts the record so
// the caller can skip the file.
func BuildClientRecord(g internal.Grid, fileName string) (internal.ClientRecord, error) {
	rec := internal.ClientRecord{Name: "Unknown", TimeOff: "None"}

	if row, _, ok := sheet.FindRow(g, func(r internal.Row) bool {
		return sheet.FirstCell(r) == clientNameLabel
	}); ok {
		if name := sheet.SecondCell(row); name != "" {
			rec.Name = name
		}
	}

	if row, _, ok := sheet.FindRowByRole(g, sheet.RowTimeOff); ok {
		if timeOff := sheet.SecondCell(row); timeOff != "" {
			rec.TimeOff = timeOff
		}
	}

	header, headerIdx, ok := sheet.FindRow(g, sheet.IsClientHeader)
	if !ok {
		return internal.ClientRecord{}, &sheet.MissingHeaderError{File: fileName}
	}

	for d, day := range internal.Weekdays {
		col := sheet.DayColumn(header, day)
		if col < 0 {
			continue
		}

		var slots []internal.TimeSlot
		for _, row := range g[headerIdx+1:] {
			label := sheet.FirstCell(row)
			if !strings.Contains(label, ":") {
				continue
			}
			if col >= len(row) || !sheet.IsAvailable(row[col]) {
				continue
			}

			slot, err := sheet.ParseSlot(label, sheet.SecondCell(row))
			if err != nil {
				return internal.ClientRecord{}, err
			}
			slots = append(slots, slot)
		}

		am, pm := sheet.FindScheduleBreaks(slots)
		rec.Days[d] = internal.DaySchedule{AM: am, PM: pm}
	}

	return rec, nil
}
