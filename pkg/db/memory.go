package db

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

// MemoryDB is an in-memory Database. Transactions are serialized and rolled back by
// restoring a snapshot taken when they began.
type MemoryDB struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	nextID      int64
	departments map[int64]model.Department
	employees   map[int64]model.Employee
	rosters     map[int64]model.Roster
	dayOffs     map[int64]model.DayOffRequest
	workDays    []model.WorkDayRecord
	alerts      map[int64]model.Alert
}

// NewMemoryDB creates an empty in-memory database
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		departments: make(map[int64]model.Department),
		employees:   make(map[int64]model.Employee),
		rosters:     make(map[int64]model.Roster),
		dayOffs:     make(map[int64]model.DayOffRequest),
		alerts:      make(map[int64]model.Alert),
	}
}

var _ Database = (*MemoryDB)(nil)

// RunInTx runs fn while holding the transaction lock, restoring the previous state if fn fails
func (m *MemoryDB) RunInTx(ctx context.Context, fn func(tx Database) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type memorySnapshot struct {
	nextID      int64
	departments map[int64]model.Department
	employees   map[int64]model.Employee
	rosters     map[int64]model.Roster
	dayOffs     map[int64]model.DayOffRequest
	workDays    []model.WorkDayRecord
	alerts      map[int64]model.Alert
}

func (m *MemoryDB) snapshot() memorySnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return memorySnapshot{
		nextID:      m.nextID,
		departments: cloneMap(m.departments),
		employees:   cloneMap(m.employees),
		rosters:     cloneMap(m.rosters),
		dayOffs:     cloneMap(m.dayOffs),
		workDays:    slices.Clone(m.workDays),
		alerts:      cloneMap(m.alerts),
	}
}

func (m *MemoryDB) restore(s memorySnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID = s.nextID
	m.departments = s.departments
	m.employees = s.employees
	m.rosters = s.rosters
	m.dayOffs = s.dayOffs
	m.workDays = s.workDays
	m.alerts = s.alerts
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *MemoryDB) newID() int64 {
	m.nextID++
	return m.nextID
}

// Departments

func (m *MemoryDB) FindDepartmentByID(ctx context.Context, id int64) (*model.Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.departments[id]
	if !ok {
		return nil, model.NewNotFound("department", id)
	}
	return &d, nil
}

func (m *MemoryDB) ExistsDepartment(ctx context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.departments[id]
	return ok, nil
}

func (m *MemoryDB) ExistsActiveDepartmentWithNormalizedName(ctx context.Context, normalizedName string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.departments {
		if d.Active && d.NormalizedName == normalizedName {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryDB) InsertDepartment(ctx context.Context, department *model.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	department.ID = m.newID()
	m.departments[department.ID] = *department
	return nil
}

// Employees

func (m *MemoryDB) FindEmployeeByID(ctx context.Context, id int64) (*model.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, model.NewNotFound("employee", id)
	}
	return &e, nil
}

func (m *MemoryDB) FindEmployeesByDepartmentAndShift(ctx context.Context, departmentID int64, shift model.Shift) ([]model.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Employee
	for _, e := range m.employees {
		if e.Active && e.DepartmentID == departmentID && e.Shift == shift {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryDB) CountEmployeesInShift(ctx context.Context, departmentID int64, shift model.Shift) (int, error) {
	employees, err := m.FindEmployeesByDepartmentAndShift(ctx, departmentID, shift)
	return len(employees), err
}

func (m *MemoryDB) ExistsEmployeeWithoutHistory(ctx context.Context, departmentID int64, shift model.Shift) (bool, error) {
	employees, err := m.FindEmployeesByDepartmentAndShift(ctx, departmentID, shift)
	if err != nil {
		return false, err
	}
	for _, e := range employees {
		if e.LastDayOff == nil {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryDB) ExistsEmployeeWithNormalizedName(ctx context.Context, departmentID int64, shift model.Shift, normalizedName string) (bool, error) {
	employees, err := m.FindEmployeesByDepartmentAndShift(ctx, departmentID, shift)
	if err != nil {
		return false, err
	}
	for _, e := range employees {
		if e.NormalizedName == normalizedName {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryDB) InsertEmployee(ctx context.Context, employee *model.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	employee.ID = m.newID()
	m.employees[employee.ID] = *employee
	return nil
}

func (m *MemoryDB) UpdateEmployeeLastDayOff(ctx context.Context, employeeID int64, date *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[employeeID]
	if !ok {
		return model.NewNotFound("employee", employeeID)
	}
	e.LastDayOff = nil
	if date != nil {
		d := *date
		e.LastDayOff = &d
	}
	m.employees[employeeID] = e
	return nil
}

// Rosters

func (m *MemoryDB) FindRosterByID(ctx context.Context, id int64) (*model.Roster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rosters[id]
	if !ok {
		return nil, model.NewNotFound("roster", id)
	}
	return &r, nil
}

func (m *MemoryDB) ExistsDuplicateRoster(ctx context.Context, month, year int, shift model.Shift, departmentID int64, status model.RosterStatus) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rosters {
		if r.Month == month && r.Year == year && r.Shift == shift && r.DepartmentID == departmentID && r.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryDB) FindPriorRoster(ctx context.Context, month, year int, shift model.Shift, departmentID int64) (*model.Roster, error) {
	prior := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	m.mu.RLock()
	defer m.mu.RUnlock()
	var found *model.Roster
	for _, r := range m.rosters {
		if r.Month == int(prior.Month()) && r.Year == prior.Year() && r.Shift == shift && r.DepartmentID == departmentID {
			if found == nil || r.ID > found.ID {
				found = &r
			}
		}
	}
	return found, nil
}

func (m *MemoryDB) InsertRoster(ctx context.Context, roster *model.Roster) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	roster.ID = m.newID()
	m.rosters[roster.ID] = *roster
	return nil
}

func (m *MemoryDB) UpdateRoster(ctx context.Context, roster *model.Roster) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rosters[roster.ID]; !ok {
		return model.NewNotFound("roster", roster.ID)
	}
	m.rosters[roster.ID] = *roster
	return nil
}

func (m *MemoryDB) DeleteRoster(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rosters[id]; !ok {
		return model.NewNotFound("roster", id)
	}
	delete(m.rosters, id)
	for dayOffID, d := range m.dayOffs {
		if d.InRoster(id) {
			delete(m.dayOffs, dayOffID)
		}
	}
	for alertID, a := range m.alerts {
		if a.RosterID == id {
			delete(m.alerts, alertID)
		}
	}
	return nil
}

func (m *MemoryDB) CountWorkDayRecords(ctx context.Context, rosterID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, w := range m.workDays {
		if w.RosterID == rosterID {
			count++
		}
	}
	return count, nil
}

// AddWorkDayRecord records a worked day. Work-day tracking is owned by the roster publishing flow,
// which lives outside this module.
func (m *MemoryDB) AddWorkDayRecord(record model.WorkDayRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record.ID = m.newID()
	m.workDays = append(m.workDays, record)
}

// Day-off requests

func (m *MemoryDB) FindDayOffByID(ctx context.Context, id int64) (*model.DayOffRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.dayOffs[id]
	if !ok {
		return nil, model.NewNotFound("day-off request", id)
	}
	return &d, nil
}

// filterDayOffs returns matching requests ordered by date then ID
func (m *MemoryDB) filterDayOffs(match func(d model.DayOffRequest) bool) []model.DayOffRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.DayOffRequest
	for _, d := range m.dayOffs {
		if match(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MemoryDB) FindDayOffRequestsOnDate(ctx context.Context, rosterID int64, date time.Time, statuses []model.DayOffStatus) ([]model.DayOffRequest, error) {
	return m.filterDayOffs(func(d model.DayOffRequest) bool {
		return d.InRoster(rosterID) && sameDay(d.Date, date) && slices.Contains(statuses, d.Status)
	}), nil
}

func (m *MemoryDB) FindLastDayOffBefore(ctx context.Context, employeeID int64, date time.Time, excludeID int64) (*time.Time, error) {
	matches := m.filterDayOffs(func(d model.DayOffRequest) bool {
		return d.ID != excludeID && d.EmployeeID == employeeID && d.Status.IsActive() && d.Date.Before(date)
	})
	if len(matches) == 0 {
		return nil, nil
	}
	last := matches[len(matches)-1].Date
	return &last, nil
}

func (m *MemoryDB) CountDayOffRequests(ctx context.Context, employeeID, rosterID int64, statuses []model.DayOffStatus, excludeID int64) (int, error) {
	requests, err := m.FindDayOffRequests(ctx, employeeID, rosterID, statuses, excludeID)
	return len(requests), err
}

func (m *MemoryDB) ExistsDayOffOnDate(ctx context.Context, employeeID int64, date time.Time, statuses []model.DayOffStatus, excludeID int64) (bool, error) {
	matches := m.filterDayOffs(func(d model.DayOffRequest) bool {
		return d.ID != excludeID && d.EmployeeID == employeeID && sameDay(d.Date, date) && slices.Contains(statuses, d.Status)
	})
	return len(matches) > 0, nil
}

func (m *MemoryDB) ExistsSundayDayOffThisMonth(ctx context.Context, employeeID int64, month, year int, excludeID int64) (bool, error) {
	matches := m.filterDayOffs(func(d model.DayOffRequest) bool {
		return d.ID != excludeID && d.EmployeeID == employeeID && d.Status.IsActive() &&
			d.Date.Weekday() == time.Sunday && int(d.Date.Month()) == month && d.Date.Year() == year
	})
	return len(matches) > 0, nil
}

func (m *MemoryDB) FindDayOffRequests(ctx context.Context, employeeID, rosterID int64, statuses []model.DayOffStatus, excludeID int64) ([]model.DayOffRequest, error) {
	return m.filterDayOffs(func(d model.DayOffRequest) bool {
		return d.ID != excludeID && d.EmployeeID == employeeID && d.InRoster(rosterID) && slices.Contains(statuses, d.Status)
	}), nil
}

func (m *MemoryDB) ListRosterDayOffs(ctx context.Context, rosterID int64) ([]model.DayOffRequest, error) {
	return m.filterDayOffs(func(d model.DayOffRequest) bool {
		return d.InRoster(rosterID)
	}), nil
}

func (m *MemoryDB) PersistDayOffRequest(ctx context.Context, request *model.DayOffRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	request.ID = m.newID()
	m.dayOffs[request.ID] = *request
	return nil
}

func (m *MemoryDB) UpdateDayOffRequest(ctx context.Context, request *model.DayOffRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.dayOffs[request.ID]; !ok {
		return model.NewNotFound("day-off request", request.ID)
	}
	m.dayOffs[request.ID] = *request
	return nil
}

func (m *MemoryDB) DeleteDayOffRequest(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.dayOffs[id]; !ok {
		return model.NewNotFound("day-off request", id)
	}
	delete(m.dayOffs, id)
	for alertID, a := range m.alerts {
		if a.DayOffID != nil && *a.DayOffID == id {
			delete(m.alerts, alertID)
		}
	}
	return nil
}

// Alerts

func (m *MemoryDB) PersistAlerts(ctx context.Context, alerts []model.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range alerts {
		alerts[i].ID = m.newID()
		m.alerts[alerts[i].ID] = alerts[i]
	}
	return nil
}

func (m *MemoryDB) filterAlerts(match func(a model.Alert) bool) []model.Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Alert
	for _, a := range m.alerts {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity.MoreSevereThan(out[j].Severity)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MemoryDB) FindUnresolvedAlertsByRoster(ctx context.Context, rosterID int64) ([]model.Alert, error) {
	return m.filterAlerts(func(a model.Alert) bool {
		return a.RosterID == rosterID && !a.Resolved
	}), nil
}

func (m *MemoryDB) FindAlertsByDayOff(ctx context.Context, dayOffID int64) ([]model.Alert, error) {
	return m.filterAlerts(func(a model.Alert) bool {
		return a.DayOffID != nil && *a.DayOffID == dayOffID
	}), nil
}

func (m *MemoryDB) MarkAlertRead(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alerts[id]
	if !ok {
		return model.NewNotFound("alert", id)
	}
	a.Read = true
	m.alerts[id] = a
	return nil
}

func (m *MemoryDB) MarkAlertResolved(ctx context.Context, id int64, resolvedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alerts[id]
	if !ok {
		return model.NewNotFound("alert", id)
	}
	at := resolvedAt
	a.Resolved = true
	a.ResolvedAt = &at
	m.alerts[id] = a
	return nil
}

func (m *MemoryDB) CountCriticalAlerts(ctx context.Context, rosterID int64) (int, error) {
	matches := m.filterAlerts(func(a model.Alert) bool {
		return a.RosterID == rosterID && !a.Resolved && a.Severity == model.SeverityCritical
	})
	return len(matches), nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
