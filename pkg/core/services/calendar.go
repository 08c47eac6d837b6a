package services

import (
	"context"

	"github.com/jakechorley/leave-roster/pkg/core/calendar"
)

func (s *Service) calendarGenerator() *calendar.Generator {
	return calendar.New(s.store, s.rules, s.clock, s.nonWorking, s.logger)
}

// GenerateCalendar builds the calendar view of a roster
func (s *Service) GenerateCalendar(ctx context.Context, rosterID int64) (*calendar.View, error) {
	return s.calendarGenerator().GenerateCalendar(ctx, rosterID)
}

// CheckMissingHistory lists the roster's employees lacking a recent reference day off
func (s *Service) CheckMissingHistory(ctx context.Context, rosterID int64) (*calendar.MissingHistory, error) {
	return s.calendarGenerator().CheckMissingHistory(ctx, rosterID)
}
