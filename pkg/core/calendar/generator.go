package calendar

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// Store is the data access needed to build a calendar
type Store interface {
	db.RosterStore
	db.EmployeeStore
	db.DayOffStore
}

// Generator builds roster calendars. It holds no state between calls.
type Generator struct {
	store      Store
	rules      calendarrules.Rules
	clock      calendarrules.Clock
	nonWorking *calendarrules.NonWorkingDays
	logger     *zap.Logger
}

// New creates a calendar generator. nonWorking may be nil.
func New(store Store, rules calendarrules.Rules, clock calendarrules.Clock, nonWorking *calendarrules.NonWorkingDays, logger *zap.Logger) *Generator {
	return &Generator{
		store:      store,
		rules:      rules,
		clock:      clock,
		nonWorking: nonWorking,
		logger:     logger,
	}
}

// GenerateCalendar builds the day grid, employee histories, summary and configuration of a roster
func (g *Generator) GenerateCalendar(ctx context.Context, rosterID int64) (*View, error) {
	g.logger.Debug("Generating calendar", zap.Int64("roster_id", rosterID))

	roster, employees, err := g.loadRoster(ctx, rosterID)
	if err != nil {
		return nil, err
	}

	today := calendarrules.Today(g.clock)

	days, err := g.buildDays(ctx, roster, len(employees), today)
	if err != nil {
		return nil, err
	}

	histories := make([]EmployeeHistory, 0, len(employees))
	for _, e := range employees {
		h, err := g.buildHistory(ctx, roster, e, today)
		if err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}
	sort.SliceStable(histories, func(i, j int) bool {
		return histories[i].Name < histories[j].Name
	})

	view := &View{
		Roster:    *roster,
		Days:      days,
		Employees: histories,
		Summary:   buildSummary(roster, days, len(employees)),
		Configuration: Configuration{
			AllowedDaysOff:         roster.AllowedDaysOff,
			MaxConsecutiveWorkDays: g.rules.MaxConsecutiveWorkDays,
			RecommendedMinInterval: calendarrules.RecommendedMinInterval,
			SundayMandatory:        calendarrules.SundayMandatory,
			MaxSimultaneousOff:     calendarrules.MaxSimultaneousOffEcho,
		},
	}

	g.logger.Debug("Calendar generated",
		zap.Int64("roster_id", rosterID),
		zap.Int("days", len(view.Days)),
		zap.Int("employees", len(view.Employees)),
		zap.Int("allocated", view.Summary.Allocated))

	return view, nil
}

// CheckMissingHistory flags employees whose last day off is unknown or older than the rest cycle allows
func (g *Generator) CheckMissingHistory(ctx context.Context, rosterID int64) (*MissingHistory, error) {
	roster, err := g.store.FindRosterByID(ctx, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	employees, err := g.store.FindEmployeesByDepartmentAndShift(ctx, roster.DepartmentID, roster.Shift)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	threshold := calendarrules.Today(g.clock).AddDate(0, 0, -g.rules.MaxConsecutiveWorkDays)

	result := &MissingHistory{Employees: []model.Employee{}}
	for _, e := range employees {
		if e.LastDayOff == nil || calendarrules.DateOnly(*e.LastDayOff).Before(threshold) {
			result.Employees = append(result.Employees, e)
		}
	}

	result.Missing = len(result.Employees) > 0
	if result.Missing {
		result.Message = fmt.Sprintf("There are %d employee(s) without a reference day off in the last %d days. "+
			"Record the last day off to ensure correct distribution.", len(result.Employees), g.rules.MaxConsecutiveWorkDays)
	} else {
		result.Message = "All employees have up-to-date day-off history."
	}

	g.logger.Debug("Checked missing history",
		zap.Int64("roster_id", rosterID),
		zap.Int("missing", len(result.Employees)))

	return result, nil
}

func (g *Generator) loadRoster(ctx context.Context, rosterID int64) (*model.Roster, []model.Employee, error) {
	roster, err := g.store.FindRosterByID(ctx, rosterID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster: %w", err)
	}

	employees, err := g.store.FindEmployeesByDepartmentAndShift(ctx, roster.DepartmentID, roster.Shift)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, nil, &model.BusinessError{
			Message: fmt.Sprintf("No active employees found for shift %s in this department.", roster.Shift),
			Err:     model.ErrNoEmployees,
		}
	}

	return roster, employees, nil
}

func (g *Generator) buildDays(ctx context.Context, roster *model.Roster, employeeCount int, today time.Time) ([]DayInfo, error) {
	closed, err := g.nonWorking.InMonth(roster.FirstDay())
	if err != nil {
		return nil, err
	}

	maxSimultaneous := int(math.Floor(float64(employeeCount) * g.rules.MaxSimultaneousRatio))
	warningAt := g.rules.WarningRatio * float64(maxSimultaneous)

	days := make([]DayInfo, 0, 31)
	for date := roster.FirstDay(); !date.After(roster.LastDay()); date = date.AddDate(0, 0, 1) {
		requests, err := g.store.FindDayOffRequestsOnDate(ctx, roster.ID, date, model.ActiveDayOffStatuses)
		if err != nil {
			return nil, fmt.Errorf("failed to load day offs on %s: %w", date.Format(calendarrules.DateLayout), err)
		}

		ids := make([]int64, len(requests))
		for i, r := range requests {
			ids[i] = r.ID
		}

		active := len(requests)
		status, reason := dayStatus(date, today, active, maxSimultaneous, warningAt)

		days = append(days, DayInfo{
			Date:            date,
			Weekday:         date.Weekday(),
			Week:            calendarrules.WeekNumber(date),
			Status:          status,
			Color:           DayStatusColors[status],
			Clickable:       status.Clickable(),
			Reason:          reason,
			ActiveCount:     active,
			SlotsAvailable:  employeeCount - active,
			MaxSimultaneous: maxSimultaneous,
			RequestIDs:      ids,
			NonWorkingDay:   closed[date],
		})
	}
	return days, nil
}

// dayStatus picks the first matching status in priority order
func dayStatus(date, today time.Time, active, maxSimultaneous int, warningAt float64) (DayStatus, string) {
	switch {
	case date.Before(today):
		return DayPast, "past date"
	case active >= maxSimultaneous:
		return DayOccupied, "limit reached"
	case date.Weekday() == time.Sunday:
		return DaySunday, ""
	case float64(active) >= warningAt:
		return DayWarning, "near limit"
	default:
		return DayOpen, ""
	}
}

func (g *Generator) buildHistory(ctx context.Context, roster *model.Roster, e model.Employee, today time.Time) (EmployeeHistory, error) {
	requests, err := g.store.FindDayOffRequests(ctx, e.ID, roster.ID, model.ActiveDayOffStatuses, 0)
	if err != nil {
		return EmployeeHistory{}, fmt.Errorf("failed to load day offs for employee %d: %w", e.ID, err)
	}

	h := EmployeeHistory{
		EmployeeID:          e.ID,
		Name:                e.Name,
		Role:                e.Role,
		LastDayOff:          e.LastDayOff,
		DaysSinceLastDayOff: calendarrules.NoHistoryDays,
		NextEligibleDate:    today,
		DayOffDates:         make([]time.Time, 0, len(requests)),
		RequestCount:        len(requests),
		Remaining:           roster.AllowedDaysOff - len(requests),
		Alerts:              []string{},
	}

	if e.LastDayOff != nil {
		last := calendarrules.DateOnly(*e.LastDayOff)
		h.DaysSinceLastDayOff = calendarrules.DaysBetween(last, today)
		h.NextEligibleDate = last.AddDate(0, 0, g.rules.RestCycle())
	}

	for _, r := range requests {
		h.DayOffDates = append(h.DayOffDates, r.Date)
		if r.Date.Weekday() == time.Sunday {
			h.HasSunday = true
		}
	}

	h.AtRisk = h.RequestCount < roster.AllowedDaysOff/2
	h.CanTakeToday = h.DaysSinceLastDayOff >= g.rules.MaxConsecutiveWorkDays

	if !h.HasSunday {
		h.Alerts = append(h.Alerts, "no Sunday this month")
	}
	if h.AtRisk {
		h.Alerts = append(h.Alerts, "few days off allocated")
	}

	switch {
	case h.CanTakeToday:
		h.Color = HistoryColorDue
	case h.AtRisk:
		h.Color = HistoryColorAtRisk
	default:
		h.Color = HistoryColorDefault
	}

	return h, nil
}

func buildSummary(roster *model.Roster, days []DayInfo, employeeCount int) Summary {
	quota := roster.AllowedDaysOff
	s := Summary{TotalEmployees: employeeCount}
	for _, d := range days {
		s.Allocated += d.ActiveCount
		switch d.Status {
		case DayOpen, DaySunday:
			s.OpenDays++
		case DayOccupied:
			s.OccupiedDays++
		case DayWarning:
			s.WarningDays++
		}
	}

	capacity := employeeCount * quota
	s.Available = capacity - s.Allocated
	if capacity > 0 {
		s.OccupancyPct = float64(s.Allocated) * 100 / float64(capacity)
	}

	first := roster.FirstDay()
	sundays := calendarrules.CountSundays(first)
	s.Capacity = Capacity{
		Sundays:     sundays,
		Saturdays:   calendarrules.CountSaturdays(first),
		PerSunday:   calendarrules.AverageOffDaysPerDay(len(days), employeeCount, sundays, time.Sunday, quota),
		PerOtherDay: calendarrules.AverageOffDaysPerDay(len(days), employeeCount, sundays, time.Monday, quota),
	}
	return s
}
