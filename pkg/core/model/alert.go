package model

import "time"

// Severity orders alerts by urgency. Lower values are more severe.
type Severity int

const (
	SeverityCritical Severity = 1
	SeverityHigh     Severity = 2
	SeverityMedium   Severity = 3
	SeverityLow      Severity = 4
	SeverityInfo     Severity = 5
)

var severityNames = map[Severity]string{
	SeverityCritical: "CRITICAL",
	SeverityHigh:     "HIGH",
	SeverityMedium:   "MEDIUM",
	SeverityLow:      "LOW",
	SeverityInfo:     "INFO",
}

// SeverityColors maps each severity to its display color
var SeverityColors = map[Severity]string{
	SeverityCritical: "#D32F2F",
	SeverityHigh:     "#F57C00",
	SeverityMedium:   "#FBC02D",
	SeverityLow:      "#388E3C",
	SeverityInfo:     "#1976D2",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Priority is the numeric rank of the severity (1 = most severe)
func (s Severity) Priority() int {
	return int(s)
}

// MoreSevereThan reports whether s should be handled before other
func (s Severity) MoreSevereThan(other Severity) bool {
	return s.Priority() < other.Priority()
}

// ParseSeverity converts a severity name such as "HIGH" back into a Severity
func ParseSeverity(name string) (Severity, bool) {
	for sev, n := range severityNames {
		if n == name {
			return sev, true
		}
	}
	return 0, false
}

// AlertType classifies an advisory alert
type AlertType string

const (
	AlertSundayMissing  AlertType = "SUNDAY_MISSING"
	AlertShortInterval  AlertType = "SHORT_INTERVAL"
	AlertShiftImbalance AlertType = "SHIFT_IMBALANCE"
)

// AlertTypeInfo holds the presentation data and default severity of an alert type
type AlertTypeInfo struct {
	Title           string
	Description     string
	DefaultSeverity Severity
}

// AlertTypes is the lookup table from alert type to its defaults
var AlertTypes = map[AlertType]AlertTypeInfo{
	AlertSundayMissing: {
		Title:           "Mandatory Sunday pending",
		Description:     "Employee has no Sunday off this month yet",
		DefaultSeverity: SeverityHigh,
	},
	AlertShortInterval: {
		Title:           "Short interval between days off",
		Description:     "Interval between days off is below the recommended minimum",
		DefaultSeverity: SeverityMedium,
	},
	AlertShiftImbalance: {
		Title:           "Coverage imbalance",
		Description:     "Shift coverage will drop below the recommended level",
		DefaultSeverity: SeverityHigh,
	},
}

// DefaultSeverity returns the severity an alert of this type starts with
func (t AlertType) DefaultSeverity() Severity {
	if info, ok := AlertTypes[t]; ok {
		return info.DefaultSeverity
	}
	return SeverityInfo
}

// Alert is a non-blocking warning raised when a day-off request is accepted
type Alert struct {
	ID             int64
	BatchID        string // shared by every alert persisted for the same request
	RosterID       int64
	EmployeeID     int64
	DayOffID       *int64
	Type           AlertType
	Severity       Severity
	Message        string
	Recommendation string
	Read           bool
	Resolved       bool
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

// NewAlert builds an alert draft for a day-off request with the type's default severity
func NewAlert(req *DayOffRequest, rosterID int64, alertType AlertType, message, recommendation string) Alert {
	var dayOffID *int64
	if req.ID != 0 {
		id := req.ID
		dayOffID = &id
	}
	return Alert{
		RosterID:       rosterID,
		EmployeeID:     req.EmployeeID,
		DayOffID:       dayOffID,
		Type:           alertType,
		Severity:       alertType.DefaultSeverity(),
		Message:        message,
		Recommendation: recommendation,
	}
}
