package sheet

import (
	"sort"
	"strings"

	"schedproc/internal"
)

// maxBreakMinutes is the longest gap still considered part of one block.
// Real schedules have at most one lunch-style break per day; the largest
// gap above this threshold is assumed to be it.
const maxBreakMinutes = 60

// FormatLocation reduces a free-text location to its single-letter code:
// "S" for school/program, "H" for home. Empty stays empty.
func FormatLocation(location string) string {
	if location == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(location), "school") {
		return "S"
	}
	return "H"
}

// FindScheduleBreaks merges one person's available slots for one day into
// at most one AM and one PM window. Slots are sorted by start time; if the
// largest gap between adjacent slots exceeds maxBreakMinutes the list is
// split there, otherwise the whole block lands on the side of noon its
// first slot starts on. Each window's location code comes from its group's
// first slot.
func FindScheduleBreaks(slots []internal.TimeSlot) (am, pm internal.ScheduleWindow) {
	if len(slots) == 0 {
		return
	}

	sorted := make([]internal.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	maxGap := 0
	breakIdx := -1
	for i := 0; i < len(sorted)-1; i++ {
		gap := sorted[i+1].Start - sorted[i].End
		if gap > maxGap {
			maxGap = gap
			breakIdx = i
		}
	}

	if maxGap > maxBreakMinutes {
		am = window(sorted[:breakIdx+1])
		pm = window(sorted[breakIdx+1:])
		return
	}

	if sorted[0].Start < 12*60 {
		am = window(sorted)
	} else {
		pm = window(sorted)
	}
	return
}

func window(group []internal.TimeSlot) internal.ScheduleWindow {
	first := group[0]
	last := group[len(group)-1]
	return internal.ScheduleWindow{
		Range:    clock(first.Start) + "-" + clock(last.End),
		Location: FormatLocation(first.Location),
	}
}
