package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation/roster"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// CreateRoster validates and stores a new roster with status NEW
func (s *Service) CreateRoster(ctx context.Context, r *model.Roster) (*model.Roster, error) {
	s.logger.Debug("Creating roster",
		zap.Int("month", r.Month),
		zap.Int("year", r.Year),
		zap.String("shift", string(r.Shift)),
		zap.Int64("department_id", r.DepartmentID))

	if err := checkRosterFields(r); err != nil {
		return nil, err
	}

	r.ID = 0
	r.Status = model.RosterNew

	err := s.store.RunInTx(ctx, func(tx db.Database) error {
		result, err := roster.NewCreateChain(tx, s.logger).Validate(ctx, r)
		if err != nil {
			return err
		}
		if !result.Valid {
			return rejection(result)
		}
		if err := tx.InsertRoster(ctx, r); err != nil {
			return fmt.Errorf("failed to insert roster: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Roster created", zap.Int64("id", r.ID), zap.String("period", r.Period()))
	return r, nil
}

// EditRoster replaces a roster's month, year, quota, shift and department. The lifecycle status is kept.
func (s *Service) EditRoster(ctx context.Context, r *model.Roster) (*model.Roster, error) {
	s.logger.Debug("Editing roster", zap.Int64("id", r.ID))

	if err := checkRosterFields(r); err != nil {
		return nil, err
	}

	err := s.store.RunInTx(ctx, func(tx db.Database) error {
		existing, err := tx.FindRosterByID(ctx, r.ID)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		r.Status = existing.Status

		result, err := roster.NewEditChain(tx, s.logger).Validate(ctx, r)
		if err != nil {
			return err
		}
		if !result.Valid {
			return rejection(result)
		}
		if err := tx.UpdateRoster(ctx, r); err != nil {
			return fmt.Errorf("failed to update roster: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Roster updated", zap.Int64("id", r.ID), zap.String("period", r.Period()))
	return r, nil
}

// DeleteRoster removes a roster together with its day-off requests and alerts
func (s *Service) DeleteRoster(ctx context.Context, id int64) error {
	err := s.store.RunInTx(ctx, func(tx db.Database) error {
		existing, err := tx.FindRosterByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		result, err := roster.NewDeleteChain(tx, s.logger).Validate(ctx, existing)
		if err != nil {
			return err
		}
		if !result.Valid {
			return rejection(result)
		}
		if err := tx.DeleteRoster(ctx, id); err != nil {
			return fmt.Errorf("failed to delete roster: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Roster deleted", zap.Int64("id", id))
	return nil
}

func checkRosterFields(r *model.Roster) error {
	if r.Month < 1 || r.Month > 12 {
		return model.NewBusinessError(fmt.Sprintf("Month must be between 1 and 12, got %d.", r.Month))
	}
	if r.Year < 1 {
		return model.NewBusinessError(fmt.Sprintf("Year must be positive, got %d.", r.Year))
	}
	if r.AllowedDaysOff < 0 {
		return model.NewBusinessError(fmt.Sprintf("Allowed days off cannot be negative, got %d.", r.AllowedDaysOff))
	}
	if !r.Shift.IsValid() {
		return model.NewBusinessError(fmt.Sprintf("Shift must be one of %s, %s or %s.", model.ShiftMorning, model.ShiftAfternoon, model.ShiftNight))
	}
	return nil
}
