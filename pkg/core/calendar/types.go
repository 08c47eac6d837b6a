package calendar

import (
	"time"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

// DayStatus is the display state of one calendar day
type DayStatus string

const (
	DayPast     DayStatus = "PAST"
	DayOccupied DayStatus = "OCCUPIED"
	DaySunday   DayStatus = "SUNDAY"
	DayWarning  DayStatus = "WARNING"
	DayOpen     DayStatus = "OPEN"
)

// DayStatusColors maps each day status to its display color
var DayStatusColors = map[DayStatus]string{
	DayPast:     "#BDBDBD",
	DayOccupied: "#F44336",
	DaySunday:   "#2196F3",
	DayWarning:  "#FF9800",
	DayOpen:     "#4CAF50",
}

// Clickable reports whether a day in this status can still receive requests
func (s DayStatus) Clickable() bool {
	return s != DayPast && s != DayOccupied
}

// Employee history colors
const (
	HistoryColorDue     = "#4CAF50"
	HistoryColorAtRisk  = "#FF9800"
	HistoryColorDefault = "#2196F3"
)

// DayInfo describes one day of the roster month
type DayInfo struct {
	Date            time.Time
	Weekday         time.Weekday
	Week            int // Monday-start week of the month, from 1
	Status          DayStatus
	Color           string
	Clickable       bool
	Reason          string
	ActiveCount     int
	SlotsAvailable  int
	MaxSimultaneous int
	RequestIDs      []int64
	NonWorkingDay   bool
}

// EmployeeHistory summarises one employee's days off for the roster
type EmployeeHistory struct {
	EmployeeID          int64
	Name                string
	Role                string
	LastDayOff          *time.Time
	DaysSinceLastDayOff int
	NextEligibleDate    time.Time
	DayOffDates         []time.Time
	RequestCount        int
	Remaining           int
	HasSunday           bool
	AtRisk              bool
	CanTakeToday        bool
	Alerts              []string
	Color               string
}

// Summary aggregates the roster month
type Summary struct {
	TotalEmployees int
	Allocated      int
	Available      int
	// OccupancyPct is allocated * 100 / (employees * quota), kept fractional rather than
	// truncated to a whole percent. Zero when the quota or the team is empty.
	OccupancyPct float64
	OpenDays     int
	OccupiedDays int
	WarningDays  int
	Capacity     Capacity
}

// Capacity is the advisory number of employees expected off on a representative day
type Capacity struct {
	Sundays     int
	Saturdays   int
	PerSunday   int
	PerOtherDay int
}

// Configuration echoes the limits the roster is evaluated with
type Configuration struct {
	AllowedDaysOff         int
	MaxConsecutiveWorkDays int
	RecommendedMinInterval int
	SundayMandatory        bool
	MaxSimultaneousOff     int
}

// View is the complete calendar of a roster
type View struct {
	Roster        model.Roster
	Days          []DayInfo
	Employees     []EmployeeHistory
	Summary       Summary
	Configuration Configuration
}

// MissingHistory lists employees without a recent reference day off
type MissingHistory struct {
	Missing   bool
	Message   string
	Employees []model.Employee
}
