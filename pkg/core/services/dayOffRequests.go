package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/alerts"
	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation/dayoff"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// DayOffResult is an accepted day-off request and the advisory alerts it raised
type DayOffResult struct {
	Request *model.DayOffRequest
	Alerts  []model.Alert
}

// NextDates holds the earliest dates an employee may take their next day off
type NextDates struct {
	NextEligible time.Time
	Candidates   []time.Time
	DaysUntil    int
}

// nextDateCandidates is the number of consecutive dates suggested after the next eligible date
const nextDateCandidates = 5

// CreateDayOff validates and stores a new PENDING day-off request, then raises alerts for it.
// A rule violation is returned as a *model.BusinessError carrying the first failing message.
func (s *Service) CreateDayOff(ctx context.Context, request *model.DayOffRequest) (*DayOffResult, error) {
	s.logger.Debug("Creating day off",
		zap.Int64("employee_id", request.EmployeeID),
		zap.String("date", request.Date.Format(calendarrules.DateLayout)))

	request.ID = 0
	request.Date = calendarrules.DateOnly(request.Date)
	request.Status = model.DayOffPending
	request.CreatedAt = s.clock.Now()

	var subject *alerts.Subject
	err := s.store.RunInTx(ctx, func(tx db.Database) error {
		candidate, err := s.validateDayOff(ctx, tx, request)
		if err != nil {
			return err
		}

		if err := tx.PersistDayOffRequest(ctx, request); err != nil {
			return fmt.Errorf("failed to persist day off: %w", err)
		}

		if err := advanceLastDayOff(ctx, tx, candidate.Employee, request.Date); err != nil {
			return err
		}

		subject = &alerts.Subject{Request: request, Employee: candidate.Employee, Roster: candidate.Roster}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Day off created", zap.Int64("id", request.ID), zap.Int64("employee_id", request.EmployeeID))

	return &DayOffResult{Request: request, Alerts: s.runAlerts(ctx, subject)}, nil
}

// UpdateDayOff moves a PENDING request to a new date and/or justification and re-validates it
// against every other request. A nil newDate or newJustification leaves the field unchanged.
func (s *Service) UpdateDayOff(ctx context.Context, id int64, newDate *time.Time, newJustification *string) (*DayOffResult, error) {
	s.logger.Debug("Updating day off", zap.Int64("id", id))

	var (
		request *model.DayOffRequest
		subject *alerts.Subject
	)
	err := s.store.RunInTx(ctx, func(tx db.Database) error {
		var err error
		request, err = tx.FindDayOffByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load day off: %w", err)
		}
		if request.Status != model.DayOffPending {
			return notPending("updated")
		}

		previousDate := request.Date
		if newDate != nil {
			request.Date = calendarrules.DateOnly(*newDate)
		}
		if newJustification != nil {
			request.Justification = *newJustification
		}

		candidate, err := s.validateDayOff(ctx, tx, request)
		if err != nil {
			return err
		}

		if err := tx.UpdateDayOffRequest(ctx, request); err != nil {
			return fmt.Errorf("failed to update day off: %w", err)
		}

		if err := rewindLastDayOff(ctx, tx, candidate.Employee, previousDate); err != nil {
			return err
		}
		if err := advanceLastDayOff(ctx, tx, candidate.Employee, request.Date); err != nil {
			return err
		}

		subject = &alerts.Subject{Request: request, Employee: candidate.Employee, Roster: candidate.Roster}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Day off updated", zap.Int64("id", id))

	return &DayOffResult{Request: request, Alerts: s.runAlerts(ctx, subject)}, nil
}

// DeleteDayOff removes a PENDING request together with its alerts
func (s *Service) DeleteDayOff(ctx context.Context, id int64) error {
	err := s.store.RunInTx(ctx, func(tx db.Database) error {
		request, err := tx.FindDayOffByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load day off: %w", err)
		}
		if request.Status != model.DayOffPending {
			return notPending("deleted")
		}
		if err := tx.DeleteDayOffRequest(ctx, id); err != nil {
			return fmt.Errorf("failed to delete day off: %w", err)
		}

		employee, err := tx.FindEmployeeByID(ctx, request.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to load employee: %w", err)
		}
		return rewindLastDayOff(ctx, tx, employee, request.Date)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Day off deleted", zap.Int64("id", id))
	return nil
}

// NextAvailableDates returns the latest date the next day off may fall on after a day off on date,
// the consecutive dates from there, and the number of days from today until it
func (s *Service) NextAvailableDates(date time.Time) NextDates {
	next := calendarrules.DateOnly(date).AddDate(0, 0, s.rules.RestCycle())

	candidates := make([]time.Time, nextDateCandidates)
	for i := range candidates {
		candidates[i] = next.AddDate(0, 0, i)
	}

	return NextDates{
		NextEligible: next,
		Candidates:   candidates,
		DaysUntil:    max(0, calendarrules.DaysBetween(calendarrules.Today(s.clock), next)),
	}
}

// validateDayOff loads the request's roster and employee and runs the day-off chain
func (s *Service) validateDayOff(ctx context.Context, tx db.Database, request *model.DayOffRequest) (*dayoff.Candidate, error) {
	if request.RosterID == nil {
		return nil, model.NewBusinessError("A day-off request must belong to a roster.")
	}

	roster, err := tx.FindRosterByID(ctx, *request.RosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	employee, err := tx.FindEmployeeByID(ctx, request.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}

	candidate := &dayoff.Candidate{Request: request, Employee: employee, Roster: roster}
	result, err := dayoff.NewChain(tx, s.rules, s.logger).ValidateCandidate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, rejection(result)
	}
	return candidate, nil
}

// advanceLastDayOff records date as the employee's last day off unless a later one is already known
func advanceLastDayOff(ctx context.Context, tx db.Database, employee *model.Employee, date time.Time) error {
	if employee.LastDayOff != nil && !employee.LastDayOff.Before(date) {
		return nil
	}
	d := date
	if err := tx.UpdateEmployeeLastDayOff(ctx, employee.ID, &d); err != nil {
		return fmt.Errorf("failed to update last day off: %w", err)
	}
	employee.LastDayOff = &d
	return nil
}

// rewindLastDayOff recomputes the employee's last day off from the remaining requests when it
// was set by a request that has since moved or been deleted from removed
func rewindLastDayOff(ctx context.Context, tx db.Database, employee *model.Employee, removed time.Time) error {
	if employee.LastDayOff == nil || !calendarrules.DateOnly(*employee.LastDayOff).Equal(calendarrules.DateOnly(removed)) {
		return nil
	}

	last, err := tx.FindLastDayOffBefore(ctx, employee.ID, calendarrules.DateOnly(removed).AddDate(0, 0, 1), 0)
	if err != nil {
		return fmt.Errorf("failed to find last day off: %w", err)
	}
	if err := tx.UpdateEmployeeLastDayOff(ctx, employee.ID, last); err != nil {
		return fmt.Errorf("failed to update last day off: %w", err)
	}
	employee.LastDayOff = last
	return nil
}
