package db

import (
	"context"
	"time"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

// DepartmentStore defines the interface for department database operations
type DepartmentStore interface {
	FindDepartmentByID(ctx context.Context, id int64) (*model.Department, error)
	ExistsDepartment(ctx context.Context, id int64) (bool, error)
	ExistsActiveDepartmentWithNormalizedName(ctx context.Context, normalizedName string) (bool, error)
	InsertDepartment(ctx context.Context, department *model.Department) error
}

// EmployeeStore defines the interface for employee database operations
type EmployeeStore interface {
	FindEmployeeByID(ctx context.Context, id int64) (*model.Employee, error)
	// FindEmployeesByDepartmentAndShift returns active employees only, ordered by name
	FindEmployeesByDepartmentAndShift(ctx context.Context, departmentID int64, shift model.Shift) ([]model.Employee, error)
	CountEmployeesInShift(ctx context.Context, departmentID int64, shift model.Shift) (int, error)
	ExistsEmployeeWithoutHistory(ctx context.Context, departmentID int64, shift model.Shift) (bool, error)
	ExistsEmployeeWithNormalizedName(ctx context.Context, departmentID int64, shift model.Shift, normalizedName string) (bool, error)
	InsertEmployee(ctx context.Context, employee *model.Employee) error
	// UpdateEmployeeLastDayOff sets the employee's last day off; nil clears it
	UpdateEmployeeLastDayOff(ctx context.Context, employeeID int64, date *time.Time) error
}

// RosterStore defines the interface for roster database operations
type RosterStore interface {
	// FindRosterByID returns a *model.NotFoundError when the roster does not exist
	FindRosterByID(ctx context.Context, id int64) (*model.Roster, error)
	ExistsDuplicateRoster(ctx context.Context, month, year int, shift model.Shift, departmentID int64, status model.RosterStatus) (bool, error)
	// FindPriorRoster returns the roster for the month before (month, year), or nil when there is none
	FindPriorRoster(ctx context.Context, month, year int, shift model.Shift, departmentID int64) (*model.Roster, error)
	InsertRoster(ctx context.Context, roster *model.Roster) error
	UpdateRoster(ctx context.Context, roster *model.Roster) error
	DeleteRoster(ctx context.Context, id int64) error
	CountWorkDayRecords(ctx context.Context, rosterID int64) (int, error)
}

// DayOffStore defines the interface for day-off request database operations.
// Queries taking excludeID ignore the request with that ID (0 excludes nothing), so a
// pending request can be re-validated against everything but itself.
type DayOffStore interface {
	FindDayOffByID(ctx context.Context, id int64) (*model.DayOffRequest, error)
	FindDayOffRequestsOnDate(ctx context.Context, rosterID int64, date time.Time, statuses []model.DayOffStatus) ([]model.DayOffRequest, error)
	// FindLastDayOffBefore returns the latest active day off strictly before date across all rosters, or nil
	FindLastDayOffBefore(ctx context.Context, employeeID int64, date time.Time, excludeID int64) (*time.Time, error)
	CountDayOffRequests(ctx context.Context, employeeID, rosterID int64, statuses []model.DayOffStatus, excludeID int64) (int, error)
	ExistsDayOffOnDate(ctx context.Context, employeeID int64, date time.Time, statuses []model.DayOffStatus, excludeID int64) (bool, error)
	ExistsSundayDayOffThisMonth(ctx context.Context, employeeID int64, month, year int, excludeID int64) (bool, error)
	FindDayOffRequests(ctx context.Context, employeeID, rosterID int64, statuses []model.DayOffStatus, excludeID int64) ([]model.DayOffRequest, error)
	// ListRosterDayOffs returns every request of the roster regardless of status, ordered by date then ID
	ListRosterDayOffs(ctx context.Context, rosterID int64) ([]model.DayOffRequest, error)
	PersistDayOffRequest(ctx context.Context, request *model.DayOffRequest) error
	UpdateDayOffRequest(ctx context.Context, request *model.DayOffRequest) error
	DeleteDayOffRequest(ctx context.Context, id int64) error
}

// AlertStore defines the interface for alert database operations
type AlertStore interface {
	// PersistAlerts stores the batch atomically and assigns IDs in place
	PersistAlerts(ctx context.Context, alerts []model.Alert) error
	// FindUnresolvedAlertsByRoster orders by severity (most severe first) then creation time
	FindUnresolvedAlertsByRoster(ctx context.Context, rosterID int64) ([]model.Alert, error)
	FindAlertsByDayOff(ctx context.Context, dayOffID int64) ([]model.Alert, error)
	MarkAlertRead(ctx context.Context, id int64) error
	MarkAlertResolved(ctx context.Context, id int64, resolvedAt time.Time) error
	CountCriticalAlerts(ctx context.Context, rosterID int64) (int, error)
}

// Database defines the interface for all database operations.
// Both the in-memory MemoryDB and postgres.DB implement this interface.
type Database interface {
	DepartmentStore
	EmployeeStore
	RosterStore
	DayOffStore
	AlertStore

	// RunInTx runs fn inside one serializable unit of work. The Database passed to fn is bound
	// to that unit; fn returning an error aborts it.
	RunInTx(ctx context.Context, fn func(tx Database) error) error
}
