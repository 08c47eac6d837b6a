package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// historyJustification marks day offs entered by hand rather than requested in a roster
const historyJustification = "Manually recorded history"

// LastDayOffCheck is the outcome of checking a manually entered last day off against a roster
type LastDayOffCheck struct {
	Valid                  bool
	Message                string
	MinimumDate            time.Time
	MaxConsecutiveWorkDays int
}

// ValidateLastDayOffDate checks that date is recent enough for the rest rule to be evaluated from
// the first day of the roster
func (s *Service) ValidateLastDayOffDate(ctx context.Context, rosterID int64, date time.Time) (*LastDayOffCheck, error) {
	r, err := s.store.FindRosterByID(ctx, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	return s.checkLastDayOff(r, date), nil
}

func (s *Service) checkLastDayOff(r *model.Roster, date time.Time) *LastDayOffCheck {
	first := r.FirstDay()
	minimum := first.AddDate(0, 0, -s.rules.RestCycle())

	check := &LastDayOffCheck{
		Valid:                  true,
		Message:                "Valid date.",
		MinimumDate:            minimum,
		MaxConsecutiveWorkDays: s.rules.MaxConsecutiveWorkDays,
	}

	if calendarrules.DateOnly(date).Before(minimum) {
		check.Valid = false
		check.Message = fmt.Sprintf("The last day off cannot be before %s. The employee may work at most %d days before %s.",
			minimum.Format("02/01/2006"), s.rules.MaxConsecutiveWorkDays, first.Format("02/01/2006"))
	}
	return check
}

// RecordHistory stores a manually entered last day off for an employee. When rosterID is given
// the date is first checked against that roster.
func (s *Service) RecordHistory(ctx context.Context, employeeID int64, date time.Time, rosterID *int64) (*model.DayOffRequest, error) {
	date = calendarrules.DateOnly(date)
	s.logger.Debug("Recording day-off history",
		zap.Int64("employee_id", employeeID),
		zap.String("date", date.Format(calendarrules.DateLayout)))

	record := &model.DayOffRequest{
		EmployeeID:    employeeID,
		Date:          date,
		Status:        model.DayOffApproved,
		Justification: historyJustification,
		CreatedAt:     s.clock.Now(),
	}

	err := s.store.RunInTx(ctx, func(tx db.Database) error {
		if rosterID != nil {
			r, err := tx.FindRosterByID(ctx, *rosterID)
			if err != nil {
				return fmt.Errorf("failed to load roster: %w", err)
			}
			if check := s.checkLastDayOff(r, date); !check.Valid {
				return &model.BusinessError{Message: check.Message, Err: model.ErrInvalidLastDayOff}
			}
		}

		if _, err := tx.FindEmployeeByID(ctx, employeeID); err != nil {
			return fmt.Errorf("failed to load employee: %w", err)
		}

		if err := tx.PersistDayOffRequest(ctx, record); err != nil {
			return fmt.Errorf("failed to persist history: %w", err)
		}
		if err := tx.UpdateEmployeeLastDayOff(ctx, employeeID, &date); err != nil {
			return fmt.Errorf("failed to update last day off: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Day-off history recorded", zap.Int64("employee_id", employeeID), zap.Int64("id", record.ID))
	return record, nil
}
