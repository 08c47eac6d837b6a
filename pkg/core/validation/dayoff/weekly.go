package dayoff

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/db"
)

const shortDateLayout = "02/01"

// WeeklyDistributionCheck keeps at least one day off available for every week of the roster month.
//
// It simulates the employee's requests with the candidate added and rejects it when:
//   - the quota would be used up while some week still has no day off, or
//   - one week would hold more than MaxRequestsPerWeek days off while another week is empty.
type WeeklyDistributionCheck struct {
	store db.DayOffStore
}

func NewWeeklyDistributionCheck(store db.DayOffStore) *WeeklyDistributionCheck {
	return &WeeklyDistributionCheck{store: store}
}

func (v *WeeklyDistributionCheck) Name() string {
	return "WeeklyDistributionCheck"
}

func (v *WeeklyDistributionCheck) Validate(ctx context.Context, c *Candidate) (validation.Result, error) {
	existing, err := v.store.FindDayOffRequests(ctx, c.Employee.ID, c.Roster.ID, model.ActiveDayOffStatuses, c.Request.ID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to find day-off requests: %w", err)
	}

	all := make([]time.Time, 0, len(existing)+1)
	for _, r := range existing {
		all = append(all, r.Date)
	}
	all = append(all, c.Request.Date)

	remaining := c.Roster.AllowedDaysOff - len(all)

	weeks := calendarrules.MonthWeeks(c.Roster.FirstDay())
	byWeek := make(map[int][]time.Time, len(weeks))
	for _, d := range all {
		if !calendarrules.SameMonth(d, c.Roster.FirstDay()) {
			continue
		}
		for _, w := range weeks {
			if w.Contains(d) {
				byWeek[w.Number] = append(byWeek[w.Number], d)
				break
			}
		}
	}

	var empty []calendarrules.Week
	for _, w := range weeks {
		if len(byWeek[w.Number]) == 0 {
			empty = append(empty, w)
		}
	}
	if len(empty) == 0 {
		return validation.OK(), nil
	}

	requested := c.Request.Date.Format(calendarrules.DateLayout)

	if remaining <= 0 {
		return validation.Invalid(
			"Cannot request a day off on %s. Employee %s would reach the limit of %d day(s) off while week(s) %s of %s have none. "+
				"At least one day off per week is required; redistribute the days off to cover every week.",
			requested, c.Employee.Name, c.Roster.AllowedDaysOff, formatWeeks(empty), c.Roster.Period()), nil
	}

	for _, w := range weeks {
		dates := byWeek[w.Number]
		if len(dates) > calendarrules.MaxRequestsPerWeek {
			return validation.Invalid(
				"Cannot request a day off on %s. Week %d already has %d day(s) off (%s) while week(s) %s have none. "+
					"Redistribute the days off to keep at least one per week.",
				requested, w.Number, len(dates), formatShortDates(dates), formatWeeks(empty)), nil
		}
	}

	return validation.OK(), nil
}

func formatWeeks(weeks []calendarrules.Week) string {
	parts := make([]string, len(weeks))
	for i, w := range weeks {
		parts[i] = fmt.Sprintf("%d (%s to %s)", w.Number, w.Start.Format(shortDateLayout), w.End.Format(shortDateLayout))
	}
	return strings.Join(parts, ", ")
}

func formatShortDates(dates []time.Time) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.Format(shortDateLayout)
	}
	return strings.Join(parts, ", ")
}
