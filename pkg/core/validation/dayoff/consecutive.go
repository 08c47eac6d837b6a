package dayoff

import (
	"context"
	"fmt"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// ConsecutiveWorkDaysCheck enforces the 6x1 rule: the days worked between the employee's previous
// day off and the requested one must stay below MaxConsecutiveWorkDays.
//
// The previous day off is looked up across all rosters (and manually recorded history), so the
// count carries over from one month to the next.
type ConsecutiveWorkDaysCheck struct {
	store db.DayOffStore
	rules calendarrules.Rules
}

func NewConsecutiveWorkDaysCheck(store db.DayOffStore, rules calendarrules.Rules) *ConsecutiveWorkDaysCheck {
	return &ConsecutiveWorkDaysCheck{store: store, rules: rules}
}

func (v *ConsecutiveWorkDaysCheck) Name() string {
	return "ConsecutiveWorkDaysCheck"
}

func (v *ConsecutiveWorkDaysCheck) Validate(ctx context.Context, c *Candidate) (validation.Result, error) {
	last, err := v.store.FindLastDayOffBefore(ctx, c.Employee.ID, c.Request.Date, c.Request.ID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to find last day off: %w", err)
	}

	// First day off on record
	if last == nil {
		return validation.OK(), nil
	}

	daysWorked := calendarrules.DaysBetween(*last, c.Request.Date) - 1
	if daysWorked >= v.rules.MaxConsecutiveWorkDays {
		return validation.Invalid(
			"Employee %s would exceed the limit of %d consecutive work days (%d days worked). Last day off: %s, requested day off: %s.",
			c.Employee.Name,
			v.rules.MaxConsecutiveWorkDays,
			daysWorked,
			last.Format(calendarrules.DateLayout),
			c.Request.Date.Format(calendarrules.DateLayout),
		), nil
	}
	return validation.OK(), nil
}
