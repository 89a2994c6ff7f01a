package internal

import "fmt"

// Cell is one decoded spreadsheet cell: string, bool, float64, or nil.
type Cell any

type Row []Cell

// Grid is the decoded 2-D form of one spreadsheet file. Column indices are
// positional within a single grid only; different sheet layouts place the
// same field in different columns.
type Grid []Row

type DriveFolder struct {
	ID   string
	Name string
}

type DriveFile struct {
	ID       string
	Name     string
	MimeType string
}

// TimeSlot is one contiguous available interval within a day. Start and End
// are minutes since midnight, Start < End.
type TimeSlot struct {
	Start    int
	End      int
	Location string
}

// ScheduleWindow is the consolidated AM or PM half of one person/day.
type ScheduleWindow struct {
	Range    string // "HH:MM-HH:MM" or ""
	Location string // "H", "S", or ""
}

type DaySchedule struct {
	AM ScheduleWindow
	PM ScheduleWindow
}

var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var DayAbbrevs = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ClientRecord holds one client's weekly AM/PM schedule. Days is indexed in
// Weekdays order. The exported column set is fixed and total: missing data
// stays the empty string so every record projects to the same row shape.
type ClientRecord struct {
	Name    string
	Days    [7]DaySchedule
	TimeOff string
}

func ClientColumns() []string {
	columns := []string{"Name"}
	for _, day := range Weekdays {
		columns = append(columns,
			"AM "+day,
			"AM "+day+" Location",
			"Pref Therapist AM "+day,
			"PM "+day,
			"PM "+day+" Location",
			"Pref Therapist PM "+day,
		)
	}
	return append(columns, "Time Off")
}

// Row projects the record onto ClientColumns order. The preferred-therapist
// cells are left blank for manual fill-in downstream.
func (r ClientRecord) Row() []any {
	out := []any{r.Name}
	for _, day := range r.Days {
		out = append(out, day.AM.Range, day.AM.Location, "", day.PM.Range, day.PM.Location, "")
	}
	return append(out, r.TimeOff)
}

// StaffRecord holds one therapist's or supervisor's weekly availability.
// Each day is either a merged "HH:MM - HH:MM" range or "Unavailable".
type StaffRecord struct {
	Name              string
	ProgramSupervisor bool
	Days              [7]string
	TimeOff           string
}

func StaffColumns() []string {
	columns := []string{"Name", "Program Supervisor"}
	columns = append(columns, DayAbbrevs[:]...)
	return append(columns, "Time Off")
}

func (r StaffRecord) Row() []any {
	out := []any{r.Name, r.ProgramSupervisor}
	for _, day := range r.Days {
		out = append(out, day)
	}
	return append(out, r.TimeOff)
}

const (
	AddressTypeClient = "Client"
	AddressTypeStaff  = "Staff"
)

// AddressRecord is one directory entry. Client initials carry an "H" or "S"
// suffix; staff entries are home addresses only, no suffix.
type AddressRecord struct {
	Initials string
	Type     string
	Address  string
}

func AddressColumns() []string {
	return []string{"Initials", "Type", "Address"}
}

func (r AddressRecord) Row() []any {
	return []any{r.Initials, r.Type, r.Address}
}

// FetchError reports a failed Drive listing or file download. Fetches are
// not retried; the folder-level caller decides what to skip.
type FetchError struct {
	Name   string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.Name, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Name, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
