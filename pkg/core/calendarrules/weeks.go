package calendarrules

import "time"

// Week is a Monday-start calendar week clipped to the bounds of its month
type Week struct {
	Number int // 1-based within the month
	Start  time.Time
	End    time.Time
}

// Contains reports whether date falls within the week
func (w Week) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// MonthWeeks partitions the month of monthDate into Monday-start weeks.
// The first and last weeks may be shorter than seven days.
func MonthWeeks(monthDate time.Time) []Week {
	first := FirstOfMonth(monthDate)
	last := LastOfMonth(first)

	var weeks []Week
	start := first
	for !start.After(last) {
		// days until the Sunday closing this week
		toSunday := (7 - int(start.Weekday())) % 7
		end := start.AddDate(0, 0, toSunday)
		if end.After(last) {
			end = last
		}
		weeks = append(weeks, Week{Number: len(weeks) + 1, Start: start, End: end})
		start = end.AddDate(0, 0, 1)
	}
	return weeks
}

// WeekNumber returns the 1-based week of date within its month, using MonthWeeks boundaries
func WeekNumber(date time.Time) int {
	for _, w := range MonthWeeks(date) {
		if w.Contains(date) {
			return w.Number
		}
	}
	return 0
}
