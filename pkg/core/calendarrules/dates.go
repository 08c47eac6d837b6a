package calendarrules

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// DateLayout is the layout used for dates in messages and storage
const DateLayout = "2006-01-02"

// rruleWeekdays maps time.Weekday (Sunday = 0) to rrule weekdays
var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// Date builds a calendar date at midnight UTC
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOnly drops the time of day, keeping the calendar date of t in its own location
func DateOnly(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// DaysBetween returns the number of calendar days from a to b (negative when b is before a)
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// FirstOfMonth returns the first day of the month containing t
func FirstOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), 1)
}

// LastOfMonth returns the last day of the month containing t
func LastOfMonth(t time.Time) time.Time {
	return FirstOfMonth(t).AddDate(0, 1, -1)
}

// DaysInMonth returns the number of days in the month containing t
func DaysInMonth(t time.Time) int {
	return LastOfMonth(t).Day()
}

// SameMonth reports whether a and b fall in the same calendar month
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// WeekdaysInMonth lists every date in the month of monthDate that falls on weekday
func WeekdaysInMonth(monthDate time.Time, weekday time.Weekday) []time.Time {
	first := FirstOfMonth(monthDate)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday]},
		Dtstart:   first,
		Until:     LastOfMonth(first),
	})
	if err != nil {
		panic(fmt.Sprintf("weekly rrule: %v", err))
	}
	return r.All()
}

// CountWeekdayOccurrences counts how many times weekday occurs in the month of monthDate
func CountWeekdayOccurrences(monthDate time.Time, weekday time.Weekday) int {
	return len(WeekdaysInMonth(monthDate, weekday))
}

// CountSundays counts the Sundays in the month of monthDate
func CountSundays(monthDate time.Time) int {
	return CountWeekdayOccurrences(monthDate, time.Sunday)
}

// CountSaturdays counts the Saturdays in the month of monthDate
func CountSaturdays(monthDate time.Time) int {
	return CountWeekdayOccurrences(monthDate, time.Saturday)
}

// FormatDates joins dates as a comma separated list
func FormatDates(dates []time.Time) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.Format(DateLayout)
	}
	return strings.Join(parts, ", ")
}
