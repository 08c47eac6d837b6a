package alerts

import (
	"context"
	"fmt"
	"math"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/db"
)

type coverageStore interface {
	db.DayOffStore
	db.EmployeeStore
}

// ShiftImbalanceAlert warns when the share of the shift still working on the requested day
// drops below the minimum coverage
type ShiftImbalanceAlert struct {
	store coverageStore
	rules calendarrules.Rules
}

func NewShiftImbalanceAlert(store coverageStore, rules calendarrules.Rules) *ShiftImbalanceAlert {
	return &ShiftImbalanceAlert{store: store, rules: rules}
}

func (a *ShiftImbalanceAlert) Name() string {
	return "ShiftImbalanceAlert"
}

func (a *ShiftImbalanceAlert) Generate(ctx context.Context, s *Subject) ([]model.Alert, error) {
	onDay, err := a.store.FindDayOffRequestsOnDate(ctx, s.Roster.ID, s.Request.Date, model.ActiveDayOffStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load day offs on date: %w", err)
	}

	total, err := a.store.CountEmployeesInShift(ctx, s.Roster.DepartmentID, s.Roster.Shift)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	coverage := 1 - float64(len(onDay))/float64(total)
	if coverage >= a.rules.MinShiftCoverage {
		return nil, nil
	}

	message := fmt.Sprintf("Coverage imbalance on %s: %d of %d employees off. Shift coverage: %.0f%% (recommended minimum: %.0f%%).",
		s.Request.Date.Format(calendarrules.DateLayout), len(onDay), total, coverage*100, a.rules.MinShiftCoverage*100)
	recommendation := fmt.Sprintf("Consider redistributing days off. Recommended maximum for this day: %d simultaneous day(s) off.",
		int(math.Floor(float64(total)*(1-a.rules.MinShiftCoverage))))

	return []model.Alert{model.NewAlert(s.Request, s.Roster.ID, model.AlertShiftImbalance, message, recommendation)}, nil
}
