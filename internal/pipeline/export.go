package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"schedproc/internal"
)

// WriteSheet writes one record type to an xlsx workbook: header row first,
// then one row per record in produced order. Cell types are preserved, so
// booleans stay booleans.
func WriteSheet(sheetName string, headers []string, rows [][]any, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ExportClients builds and writes the client schedule sheet, returning the
// number of rows written.
func (s *Service) ExportClients(ctx context.Context, folderID, outputPath string) (int, error) {
	records, err := s.ClientRecords(ctx, folderID)
	if err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	if err := WriteSheet("Clients", internal.ClientColumns(), rows, outputPath); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ExportStaff builds and writes the staff availability sheet.
func (s *Service) ExportStaff(ctx context.Context, therapistsID, supervisorsID, outputPath string) (int, error) {
	records, err := s.StaffRecords(ctx, therapistsID, supervisorsID)
	if err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	if err := WriteSheet("Staff", internal.StaffColumns(), rows, outputPath); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ExportAddresses builds and writes the combined address directory.
func (s *Service) ExportAddresses(ctx context.Context, clientsID, therapistsID, supervisorsID, outputPath string) (int, error) {
	records, err := s.AddressRecords(ctx, clientsID, therapistsID, supervisorsID)
	if err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	if err := WriteSheet("Addresses", internal.AddressColumns(), rows, outputPath); err != nil {
		return 0, err
	}
	return len(rows), nil
}
