package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "staff.xlsx")

	headers := []string{"Name", "Program Supervisor", "Mon"}
	rows := [][]any{
		{"TJ", true, "08:00 - 16:00"},
		{"RM", false, "Unavailable"},
	}
	if err := WriteSheet("Staff", headers, rows, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetRows("Staff")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("rows=%d", len(got))
	}
	if got[0][0] != "Name" || got[0][2] != "Mon" {
		t.Fatalf("header=%v", got[0])
	}
	if got[1][0] != "TJ" || got[1][1] != "TRUE" {
		t.Fatalf("row 1=%v", got[1])
	}
	if got[2][2] != "Unavailable" {
		t.Fatalf("row 2=%v", got[2])
	}
}

func TestWriteSheetEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.xlsx")
	if err := WriteSheet("Clients", []string{"Name"}, nil, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetRows("Clients")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0][0] != "Name" {
		t.Fatalf("got %v", got)
	}
}
