package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// SundayMissingAlert warns when an employee still has quota left but no Sunday off this month
type SundayMissingAlert struct {
	store db.DayOffStore
	clock calendarrules.Clock
}

func NewSundayMissingAlert(store db.DayOffStore, clock calendarrules.Clock) *SundayMissingAlert {
	return &SundayMissingAlert{store: store, clock: clock}
}

func (a *SundayMissingAlert) Name() string {
	return "SundayMissingAlert"
}

func (a *SundayMissingAlert) Generate(ctx context.Context, s *Subject) ([]model.Alert, error) {
	count, err := a.store.CountDayOffRequests(ctx, s.Employee.ID, s.Roster.ID, model.ActiveDayOffStatuses, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to count day offs: %w", err)
	}

	hasSunday, err := a.store.ExistsSundayDayOffThisMonth(ctx, s.Employee.ID, s.Roster.Month, s.Roster.Year, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check Sunday day off: %w", err)
	}

	if hasSunday || count >= s.Roster.AllowedDaysOff {
		return nil, nil
	}

	sundays := formatSundays(remainingSundays(s.Roster, calendarrules.Today(a.clock)))
	message := fmt.Sprintf("%s has no Sunday off yet in %s. Days off remaining: %d. Available Sundays: %s.",
		s.Employee.Name, s.Roster.Period(), s.Roster.AllowedDaysOff-count, sundays)
	recommendation := fmt.Sprintf("Schedule one of the next days off on a Sunday: %s.", sundays)

	return []model.Alert{model.NewAlert(s.Request, s.Roster.ID, model.AlertSundayMissing, message, recommendation)}, nil
}

// remainingSundays lists the roster's Sundays that are not in the past
func remainingSundays(r *model.Roster, today time.Time) []time.Time {
	var out []time.Time
	for _, d := range calendarrules.WeekdaysInMonth(r.FirstDay(), time.Sunday) {
		if !d.Before(today) {
			out = append(out, d)
		}
	}
	return out
}

func formatSundays(dates []time.Time) string {
	if len(dates) == 0 {
		return "none"
	}
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.Format("02/01")
	}
	return strings.Join(parts, ", ")
}
