package pipeline

import (
	"sort"
	"strings"

	"schedproc/internal"
	"schedproc/internal/sheet"
)

// CollectAddresses extracts every address row from one grid. Client entries
// get an "H"/"S" initials suffix per row; staff entries keep only the home
// address, no suffix. Rows with an empty address are skipped.
func CollectAddresses(g internal.Grid, fileName, recordType string) []internal.AddressRecord {
	initials := "Unknown"
	if row, _, ok := sheet.FindRowByRole(g, sheet.RowName); ok {
		if v := sheet.SecondCell(row); v != "" {
			initials = v
		}
	} else {
		initials = sheet.NameFromFileName(fileName)
	}

	var out []internal.AddressRecord
	for _, row := range g {
		if len(row) == 0 || !sheet.CellContains(row[0], "address") {
			continue
		}
		address := sheet.SecondCell(row)
		if address == "" {
			continue
		}
		school := sheet.CellContains(row[0], "school")

		switch recordType {
		case internal.AddressTypeClient:
			suffix := "H"
			if school {
				suffix = "S"
			}
			out = append(out, internal.AddressRecord{
				Initials: initials + suffix,
				Type:     recordType,
				Address:  address,
			})
		case internal.AddressTypeStaff:
			if !school {
				out = append(out, internal.AddressRecord{
					Initials: initials,
					Type:     recordType,
					Address:  address,
				})
			}
		}
	}
	return out
}

// SortAddresses orders the directory: all Client entries before Staff,
// then case-normalized initials within each type.
func SortAddresses(records []internal.AddressRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Type != records[j].Type {
			return records[i].Type == internal.AddressTypeClient
		}
		return strings.ToLower(records[i].Initials) < strings.ToLower(records[j].Initials)
	})
}
