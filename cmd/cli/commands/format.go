package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jakechorley/leave-roster/pkg/core/calendar"
	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorDim    = "\033[2m"
)

func parseID(name, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got: %s", name, value)
	}
	return id, nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(calendarrules.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as YYYY-MM-DD, got: %s", value)
	}
	return date, nil
}

func parseShift(value string) (model.Shift, error) {
	shift := model.Shift(strings.ToUpper(value))
	if !shift.IsValid() {
		return "", fmt.Errorf("shift must be one of MORNING, AFTERNOON or NIGHT, got: %s", value)
	}
	return shift, nil
}

// ansiColors maps the display palette of day statuses and severities to terminal colors
var ansiColors = map[string]string{
	calendar.DayStatusColors[calendar.DayOpen]:     colorGreen,
	calendar.DayStatusColors[calendar.DayWarning]:  colorYellow,
	calendar.DayStatusColors[calendar.DayOccupied]: colorRed,
	calendar.DayStatusColors[calendar.DaySunday]:   colorBlue,
	calendar.DayStatusColors[calendar.DayPast]:     colorDim,

	model.SeverityColors[model.SeverityCritical]: colorRed,
	model.SeverityColors[model.SeverityHigh]:     colorRed,
	model.SeverityColors[model.SeverityMedium]:   colorYellow,
	model.SeverityColors[model.SeverityLow]:      colorGreen,
	model.SeverityColors[model.SeverityInfo]:     colorBlue,
}

func ansiColor(hex string) string {
	if c, ok := ansiColors[hex]; ok {
		return c
	}
	return colorDim
}

func dayStatusColor(status calendar.DayStatus) string {
	return ansiColor(calendar.DayStatusColors[status])
}

func severityColor(severity model.Severity) string {
	return ansiColor(model.SeverityColors[severity])
}

func parseSeverity(value string) (model.Severity, error) {
	severity, ok := model.ParseSeverity(strings.ToUpper(value))
	if !ok {
		return 0, fmt.Errorf("severity must be one of CRITICAL, HIGH, MEDIUM, LOW or INFO, got: %s", value)
	}
	return severity, nil
}

// filterBySeverity keeps alerts at least as severe as threshold
func filterBySeverity(alerts []model.Alert, threshold model.Severity) []model.Alert {
	var kept []model.Alert
	for _, a := range alerts {
		if !threshold.MoreSevereThan(a.Severity) {
			kept = append(kept, a)
		}
	}
	return kept
}

func printAlerts(alerts []model.Alert) {
	if len(alerts) == 0 {
		fmt.Println("No alerts.")
		return
	}

	for _, a := range alerts {
		color := severityColor(a.Severity)
		flags := ""
		if a.Read {
			flags += " read"
		}
		if a.Resolved {
			flags += " resolved"
		}
		fmt.Printf("  %s[%s]%s #%d %s (employee %d)%s%s%s\n",
			color, a.Severity, colorReset, a.ID, a.Type, a.EmployeeID, colorDim, flags, colorReset)
		fmt.Printf("      %s\n", a.Message)
		if a.Recommendation != "" {
			fmt.Printf("      → %s\n", a.Recommendation)
		}
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(calendarrules.DateLayout)
}
