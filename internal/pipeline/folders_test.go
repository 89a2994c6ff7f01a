package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"schedproc/internal"
)

type fakeLister struct {
	folders map[string][]internal.DriveFile
	err     error
}

func (f *fakeLister) ListFiles(_ context.Context, folderID string) ([]internal.DriveFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.folders[folderID], nil
}

type fakeSource struct {
	mu      sync.Mutex
	grids   map[string]internal.Grid
	cleared bool
}

func (f *fakeSource) FetchGrid(_ context.Context, file internal.DriveFile) (internal.Grid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.grids[file.ID]
	if !ok {
		return nil, errors.New("download failed")
	}
	return g, nil
}

func (f *fakeSource) ClearCache() {
	f.mu.Lock()
	f.cleared = true
	f.mu.Unlock()
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func clientGridFor(initials string) internal.Grid {
	return internal.Grid{
		{"Client Initials", initials},
		{"Time of Day", "Home/School", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		{"9:00am - 10:00am", "Home", true},
	}
}

func staffGridFor(initials string) internal.Grid {
	return internal.Grid{
		{"Staff Initials", initials},
		{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		{"8:00am - 4:00pm", true},
	}
}

func TestClientRecordsNoFolderSelected(t *testing.T) {
	s := NewService(&fakeLister{}, &fakeSource{}, quietLogger(), 2)
	if _, err := s.ClientRecords(context.Background(), "  "); !errors.Is(err, ErrNoFolderSelected) {
		t.Fatalf("err=%v", err)
	}
	if _, err := s.StaffRecords(context.Background(), "", ""); !errors.Is(err, ErrNoFolderSelected) {
		t.Fatalf("err=%v", err)
	}
	if _, err := s.AddressRecords(context.Background(), "", "", ""); !errors.Is(err, ErrNoFolderSelected) {
		t.Fatalf("err=%v", err)
	}
}

func TestClientRecordsPreservesListingOrder(t *testing.T) {
	lister := &fakeLister{folders: map[string][]internal.DriveFile{
		"clients": {
			{ID: "1", Name: "schedule_CC.xlsx"},
			{ID: "2", Name: "schedule_AA.xlsx"},
			{ID: "3", Name: "schedule_BB.xlsx"},
		},
	}}
	source := &fakeSource{grids: map[string]internal.Grid{
		"1": clientGridFor("CC"),
		"2": clientGridFor("AA"),
		"3": clientGridFor("BB"),
	}}
	s := NewService(lister, source, quietLogger(), 3)

	records, err := s.ClientRecords(context.Background(), "clients")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("records=%d", len(records))
	}
	for i, want := range []string{"CC", "AA", "BB"} {
		if records[i].Name != want {
			t.Fatalf("pos %d = %q want %q", i, records[i].Name, want)
		}
	}
}

func TestClientRecordsSkipsUnreadableFiles(t *testing.T) {
	lister := &fakeLister{folders: map[string][]internal.DriveFile{
		"clients": {
			{ID: "1", Name: "schedule_AA.xlsx"},
			{ID: "2", Name: "broken.xlsx"},
			{ID: "3", Name: "no_header.xlsx"},
		},
	}}
	source := &fakeSource{grids: map[string]internal.Grid{
		"1": clientGridFor("AA"),
		"3": {{"nothing useful"}},
	}}
	s := NewService(lister, source, quietLogger(), 2)

	records, err := s.ClientRecords(context.Background(), "clients")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Name != "AA" {
		t.Fatalf("records=%+v", records)
	}
}

func TestClientRecordsListingFailureAborts(t *testing.T) {
	lister := &fakeLister{err: errors.New("boom")}
	s := NewService(lister, &fakeSource{}, quietLogger(), 1)
	if _, err := s.ClientRecords(context.Background(), "clients"); err == nil {
		t.Fatal("expected error")
	}
}

func TestStaffRecordsTherapistsBeforeSupervisors(t *testing.T) {
	lister := &fakeLister{folders: map[string][]internal.DriveFile{
		"therapists":  {{ID: "t1", Name: "availability_TA.xlsx"}},
		"supervisors": {{ID: "s1", Name: "availability_SA.xlsx"}},
	}}
	source := &fakeSource{grids: map[string]internal.Grid{
		"t1": staffGridFor("TA"),
		"s1": staffGridFor("SA"),
	}}
	s := NewService(lister, source, quietLogger(), 2)

	records, err := s.StaffRecords(context.Background(), "therapists", "supervisors")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("records=%d", len(records))
	}
	if records[0].Name != "TA" || records[0].ProgramSupervisor {
		t.Fatalf("first=%+v", records[0])
	}
	if records[1].Name != "SA" || !records[1].ProgramSupervisor {
		t.Fatalf("second=%+v", records[1])
	}
}

func TestStaffRecordsSingleFolder(t *testing.T) {
	lister := &fakeLister{folders: map[string][]internal.DriveFile{
		"supervisors": {{ID: "s1", Name: "availability_SA.xlsx"}},
	}}
	source := &fakeSource{grids: map[string]internal.Grid{"s1": staffGridFor("SA")}}
	s := NewService(lister, source, quietLogger(), 1)

	records, err := s.StaffRecords(context.Background(), "", "supervisors")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || !records[0].ProgramSupervisor {
		t.Fatalf("records=%+v", records)
	}
}

func TestAddressRecordsSorted(t *testing.T) {
	lister := &fakeLister{folders: map[string][]internal.DriveFile{
		"clients":    {{ID: "c1", Name: "schedule_ZZ.xlsx"}},
		"therapists": {{ID: "t1", Name: "availability_AA.xlsx"}},
	}}
	source := &fakeSource{grids: map[string]internal.Grid{
		"c1": {
			{"Client Initials", "ZZ"},
			{"Home Address", "12 Oak St"},
		},
		"t1": {
			{"Initials", "AA"},
			{"Home Address", "5 Pine Rd"},
		},
	}}
	s := NewService(lister, source, quietLogger(), 2)

	records, err := s.AddressRecords(context.Background(), "clients", "therapists", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("records=%+v", records)
	}
	if records[0].Initials != "ZZH" || records[0].Type != internal.AddressTypeClient {
		t.Fatalf("first=%+v", records[0])
	}
	if records[1].Initials != "AA" || records[1].Type != internal.AddressTypeStaff {
		t.Fatalf("second=%+v", records[1])
	}
}

func TestProgressCallback(t *testing.T) {
	lister := &fakeLister{folders: map[string][]internal.DriveFile{
		"clients": {
			{ID: "1", Name: "schedule_AA.xlsx"},
			{ID: "2", Name: "schedule_BB.xlsx"},
		},
	}}
	source := &fakeSource{grids: map[string]internal.Grid{
		"1": clientGridFor("AA"),
		"2": clientGridFor("BB"),
	}}
	s := NewService(lister, source, quietLogger(), 1)

	var mu sync.Mutex
	var lines []string
	s.SetProgress(func(status string) {
		mu.Lock()
		lines = append(lines, status)
		mu.Unlock()
	})

	if _, err := s.ClientRecords(context.Background(), "clients"); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("progress lines=%v", lines)
	}
}

func TestClearCacheDelegates(t *testing.T) {
	source := &fakeSource{}
	s := NewService(&fakeLister{}, source, quietLogger(), 1)
	s.ClearCache()
	if !source.cleared {
		t.Fatal("cache not cleared")
	}
}
