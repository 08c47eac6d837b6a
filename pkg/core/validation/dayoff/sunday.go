package dayoff

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// MandatorySundayCheck keeps the last quota slot for a Sunday when the employee has not had one yet this month
type MandatorySundayCheck struct {
	store db.DayOffStore
}

func NewMandatorySundayCheck(store db.DayOffStore) *MandatorySundayCheck {
	return &MandatorySundayCheck{store: store}
}

func (v *MandatorySundayCheck) Name() string {
	return "MandatorySundayCheck"
}

func (v *MandatorySundayCheck) Validate(ctx context.Context, c *Candidate) (validation.Result, error) {
	// The candidate itself satisfies the rule
	if c.Request.Date.Weekday() == time.Sunday {
		return validation.OK(), nil
	}

	hasSunday, err := v.store.ExistsSundayDayOffThisMonth(ctx, c.Employee.ID, c.Roster.Month, c.Roster.Year, c.Request.ID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to check Sunday days off: %w", err)
	}
	if hasSunday {
		return validation.OK(), nil
	}

	count, err := v.store.CountDayOffRequests(ctx, c.Employee.ID, c.Roster.ID, model.ActiveDayOffStatuses, c.Request.ID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to count day-off requests: %w", err)
	}

	if count+1 >= c.Roster.AllowedDaysOff {
		sundays := calendarrules.WeekdaysInMonth(c.Roster.FirstDay(), time.Sunday)
		return validation.Invalid(
			"Only one day off remains for employee %s in the %s roster and no Sunday has been taken yet. Request one of this month's Sundays: %s.",
			c.Employee.Name, c.Roster.Period(), calendarrules.FormatDates(sundays)), nil
	}
	return validation.OK(), nil
}
