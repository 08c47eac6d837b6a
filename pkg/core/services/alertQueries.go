package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

// RosterAlerts returns the unresolved alerts of a roster, most severe first
func (s *Service) RosterAlerts(ctx context.Context, rosterID int64) ([]model.Alert, error) {
	alerts, err := s.store.FindUnresolvedAlertsByRoster(ctx, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster alerts: %w", err)
	}
	return alerts, nil
}

// DayOffAlerts returns every alert raised for a day-off request, most severe first
func (s *Service) DayOffAlerts(ctx context.Context, dayOffID int64) ([]model.Alert, error) {
	alerts, err := s.store.FindAlertsByDayOff(ctx, dayOffID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch day-off alerts: %w", err)
	}
	return alerts, nil
}

func (s *Service) MarkAlertRead(ctx context.Context, id int64) error {
	if err := s.store.MarkAlertRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	s.logger.Info("Alert marked as read", zap.Int64("id", id))
	return nil
}

// MarkAlertResolved resolves an alert at the current time
func (s *Service) MarkAlertResolved(ctx context.Context, id int64) error {
	if err := s.store.MarkAlertResolved(ctx, id, s.clock.Now()); err != nil {
		return fmt.Errorf("failed to mark alert resolved: %w", err)
	}
	s.logger.Info("Alert marked as resolved", zap.Int64("id", id))
	return nil
}

// CountCriticalAlerts counts the unresolved CRITICAL alerts of a roster
func (s *Service) CountCriticalAlerts(ctx context.Context, rosterID int64) (int, error) {
	count, err := s.store.CountCriticalAlerts(ctx, rosterID)
	if err != nil {
		return 0, fmt.Errorf("failed to count critical alerts: %w", err)
	}
	return count, nil
}
