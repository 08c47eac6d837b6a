package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/alerts"
	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// Service orchestrates the roster use cases. Every mutation validates and persists inside one
// transaction; alerts are generated after it commits.
type Service struct {
	store      db.Database
	rules      calendarrules.Rules
	clock      calendarrules.Clock
	nonWorking *calendarrules.NonWorkingDays
	logger     *zap.Logger
}

// New creates a Service. nonWorking may be nil.
func New(store db.Database, rules calendarrules.Rules, clock calendarrules.Clock, nonWorking *calendarrules.NonWorkingDays, logger *zap.Logger) *Service {
	return &Service{
		store:      store,
		rules:      rules,
		clock:      clock,
		nonWorking: nonWorking,
		logger:     logger,
	}
}

func (s *Service) alertEngine() *alerts.Engine {
	return alerts.NewDefaultEngine(s.store, s.rules, s.clock, s.logger)
}

// runAlerts generates alerts for an accepted request. Failures are logged and never returned.
func (s *Service) runAlerts(ctx context.Context, subject *alerts.Subject) []model.Alert {
	generated, err := s.alertEngine().Run(ctx, subject)
	if err != nil {
		s.logger.Error("Failed to generate alerts",
			zap.Int64("day_off_id", subject.Request.ID),
			zap.Error(err))
		return []model.Alert{}
	}
	return generated
}

// rejection converts a failed validation result into a business error
func rejection(result validation.Result) error {
	return model.NewBusinessError(result.Message)
}

func notPending(action string) error {
	return &model.BusinessError{
		Message: fmt.Sprintf("Only pending day-off requests can be %s.", action),
		Err:     model.ErrNotPending,
	}
}
