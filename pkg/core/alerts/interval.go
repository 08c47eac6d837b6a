package alerts

import (
	"context"
	"fmt"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// ShortIntervalAlert warns when two days off are closer than the recommended interval
type ShortIntervalAlert struct {
	store db.DayOffStore
	rules calendarrules.Rules
}

func NewShortIntervalAlert(store db.DayOffStore, rules calendarrules.Rules) *ShortIntervalAlert {
	return &ShortIntervalAlert{store: store, rules: rules}
}

func (a *ShortIntervalAlert) Name() string {
	return "ShortIntervalAlert"
}

func (a *ShortIntervalAlert) Generate(ctx context.Context, s *Subject) ([]model.Alert, error) {
	last, err := a.store.FindLastDayOffBefore(ctx, s.Employee.ID, s.Request.Date, s.Request.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find last day off: %w", err)
	}
	if last == nil {
		return nil, nil
	}

	gap := calendarrules.DaysBetween(*last, s.Request.Date)
	if gap <= 0 || gap >= a.rules.RecommendedMinInterval {
		return nil, nil
	}

	message := fmt.Sprintf("Short interval between days off: %d day(s) (recommended: %d+ days). Last day off: %s. New day off: %s.",
		gap, a.rules.RecommendedMinInterval,
		last.Format(calendarrules.DateLayout), s.Request.Date.Format(calendarrules.DateLayout))
	recommendation := fmt.Sprintf("Consider moving the day off to %s or later.",
		s.Request.Date.AddDate(0, 0, a.rules.RecommendedMinInterval-gap).Format(calendarrules.DateLayout))

	return []model.Alert{model.NewAlert(s.Request, s.Roster.ID, model.AlertShortInterval, message, recommendation)}, nil
}
