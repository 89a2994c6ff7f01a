package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"schedproc/internal"
)

// SlotParseError reports a malformed time label. It is non-fatal at the day
// level; the folder walker logs it and skips the file.
type SlotParseError struct {
	Label string
	Cause error
}

func (e *SlotParseError) Error() string {
	return fmt.Sprintf("parse time label %q: %v", e.Label, e.Cause)
}

func (e *SlotParseError) Unwrap() error { return e.Cause }

// parseClock converts "H:MM(am|pm)" to minutes since midnight. 12pm stays
// 12, other pm hours gain 12, and 12am is hour 0. Both the client slot path
// and the staff range path share this one rule.
func parseClock(s string) (int, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	isPM := strings.Contains(lower, "pm")
	isAM := strings.Contains(lower, "am")

	digits := strings.NewReplacer("am", "", "pm", "").Replace(lower)
	parts := strings.Split(strings.TrimSpace(digits), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected H:MM, got %q", s)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("bad minute in %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time out of range in %q", s)
	}

	if isPM && hour != 12 {
		hour += 12
	}
	if isAM && hour == 12 {
		hour = 0
	}
	return hour*60 + minute, nil
}

// ParseSlot parses an "H:MM(am|pm) - H:MM(am|pm)" label into a TimeSlot.
// Each side is parsed independently by parseClock.
func ParseSlot(label, location string) (internal.TimeSlot, error) {
	parts := strings.Split(label, " - ")
	if len(parts) != 2 {
		return internal.TimeSlot{}, &SlotParseError{Label: label, Cause: fmt.Errorf("expected two sides around \" - \"")}
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return internal.TimeSlot{}, &SlotParseError{Label: label, Cause: err}
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return internal.TimeSlot{}, &SlotParseError{Label: label, Cause: err}
	}
	return internal.TimeSlot{Start: start, End: end, Location: location}, nil
}

// ConvertTo24Hr turns "H:MM(am|pm)" into zero-padded 24-hour "HH:MM".
func ConvertTo24Hr(s string) (string, error) {
	minutes, err := parseClock(s)
	if err != nil {
		return "", &SlotParseError{Label: s, Cause: err}
	}
	return clock(minutes), nil
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
