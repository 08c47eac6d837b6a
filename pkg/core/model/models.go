package model

import "time"

// Shift identifies the working period a team covers
type Shift string

const (
	ShiftMorning   Shift = "MORNING"
	ShiftAfternoon Shift = "AFTERNOON"
	ShiftNight     Shift = "NIGHT"
)

func (s Shift) IsValid() bool {
	return s == ShiftMorning || s == ShiftAfternoon || s == ShiftNight
}

// RosterStatus is the lifecycle state of a roster
type RosterStatus string

const (
	RosterNew       RosterStatus = "NEW"
	RosterPartial   RosterStatus = "PARTIAL"
	RosterPublished RosterStatus = "PUBLISHED"
	RosterClosed    RosterStatus = "CLOSED"
)

// IsLocked returns true for states in which a roster can no longer be edited or deleted
func (s RosterStatus) IsLocked() bool {
	return s == RosterPublished || s == RosterClosed
}

// DayOffStatus is the approval state of a day-off request
type DayOffStatus string

const (
	DayOffPending  DayOffStatus = "PENDING"
	DayOffApproved DayOffStatus = "APPROVED"
	DayOffDenied   DayOffStatus = "DENIED"
)

// ActiveDayOffStatuses are the statuses that count against quotas and rest rules
var ActiveDayOffStatuses = []DayOffStatus{DayOffPending, DayOffApproved}

// IsActive returns true when the status counts against quotas and rest rules
func (s DayOffStatus) IsActive() bool {
	return s == DayOffPending || s == DayOffApproved
}

// Department is a hospital ward or any other team grouping employees
type Department struct {
	ID   int64
	Name string
	// NormalizedName is the case and diacritic insensitive form of Name, used for duplicate detection
	NormalizedName string
	Active         bool
}

// Employee works one shift in one department. Employees are deactivated, never deleted.
type Employee struct {
	ID   int64
	Name string
	// NormalizedName is used to detect duplicate employees within a department and shift
	NormalizedName string
	Role           string
	Shift          Shift
	DepartmentID   int64
	Active         bool
	LastDayOff     *time.Time // nil when no history has been recorded
}

// Roster is the monthly day-off container for one department and shift
type Roster struct {
	ID             int64
	Month          int // 1-12
	Year           int
	AllowedDaysOff int // quota per employee
	Shift          Shift
	DepartmentID   int64
	Status         RosterStatus
}

// FirstDay returns the first calendar day of the roster's month
func (r *Roster) FirstDay() time.Time {
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
}

// LastDay returns the last calendar day of the roster's month
func (r *Roster) LastDay() time.Time {
	return r.FirstDay().AddDate(0, 1, -1)
}

// Period formats the roster month as MM/YYYY
func (r *Roster) Period() string {
	return r.FirstDay().Format("01/2006")
}

// DayOffRequest is one employee's request to be off work on a given date
type DayOffRequest struct {
	ID         int64
	EmployeeID int64
	// RosterID is nil for manually recorded history
	RosterID      *int64
	Date          time.Time
	Status        DayOffStatus
	Justification string
	CreatedAt     time.Time
}

// InRoster returns true if the request belongs to the given roster
func (d *DayOffRequest) InRoster(rosterID int64) bool {
	return d.RosterID != nil && *d.RosterID == rosterID
}

// WorkDayRecord marks a day an employee actually worked under a roster
type WorkDayRecord struct {
	ID         int64
	RosterID   int64
	EmployeeID int64
	Date       time.Time
}
