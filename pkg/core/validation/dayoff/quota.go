package dayoff

import (
	"context"
	"fmt"

	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// QuotaCheck rejects a request once the employee holds as many active requests as the roster allows
type QuotaCheck struct {
	store db.DayOffStore
}

func NewQuotaCheck(store db.DayOffStore) *QuotaCheck {
	return &QuotaCheck{store: store}
}

func (v *QuotaCheck) Name() string {
	return "QuotaCheck"
}

func (v *QuotaCheck) Validate(ctx context.Context, c *Candidate) (validation.Result, error) {
	count, err := v.store.CountDayOffRequests(ctx, c.Employee.ID, c.Roster.ID, model.ActiveDayOffStatuses, c.Request.ID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to count day-off requests: %w", err)
	}

	if count >= c.Roster.AllowedDaysOff {
		return validation.Invalid("Employee %s has already reached the limit of %d days off allowed in the %s roster.",
			c.Employee.Name, c.Roster.AllowedDaysOff, c.Roster.Period()), nil
	}
	return validation.OK(), nil
}
