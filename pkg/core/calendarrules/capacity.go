package calendarrules

import "time"

// AverageOffDaysPerDay estimates how many employees should be off on a representative day
// of the given weekday class (Sunday or any other day).
//
// Every employee gets a share of the Sundays first: ceil(employees / sundays) per Sunday.
// What is left of the total quota is spread evenly, rounding up, over the remaining days.
// The result is advisory capacity planning only.
func AverageOffDaysPerDay(totalDaysInMonth, totalEmployees, sundaysInMonth int, weekday time.Weekday, quotaPerEmployee int) int {
	if totalDaysInMonth <= 0 || totalEmployees <= 0 || quotaPerEmployee <= 0 {
		return 0
	}

	totalOff := totalEmployees * quotaPerEmployee

	perSunday := 0
	if sundaysInMonth > 0 {
		perSunday = ceilDiv(totalEmployees, sundaysInMonth)
	}

	remaining := totalOff - perSunday*sundaysInMonth
	if remaining < 0 {
		remaining = 0
	}

	perWeekday := 0
	if otherDays := totalDaysInMonth - sundaysInMonth; otherDays > 0 {
		perWeekday = ceilDiv(remaining, otherDays)
	}

	if weekday == time.Sunday {
		return perSunday
	}
	return perWeekday
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
