package dayoff

import (
	"context"
	"fmt"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// DuplicateCheck rejects a second active request for the same employee and date
type DuplicateCheck struct {
	store db.DayOffStore
}

func NewDuplicateCheck(store db.DayOffStore) *DuplicateCheck {
	return &DuplicateCheck{store: store}
}

func (v *DuplicateCheck) Name() string {
	return "DuplicateCheck"
}

func (v *DuplicateCheck) Validate(ctx context.Context, c *Candidate) (validation.Result, error) {
	exists, err := v.store.ExistsDayOffOnDate(ctx, c.Employee.ID, c.Request.Date, model.ActiveDayOffStatuses, c.Request.ID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to check existing day off: %w", err)
	}

	if exists {
		return validation.Invalid("Employee %s already has a day off on %s.",
			c.Employee.Name, c.Request.Date.Format(calendarrules.DateLayout)), nil
	}
	return validation.OK(), nil
}
