package alerts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// Subject is an accepted day-off request together with the entities it refers to
type Subject struct {
	Request  *model.DayOffRequest
	Employee *model.Employee
	Roster   *model.Roster
}

// Generator inspects an accepted request and drafts zero or more alerts
type Generator interface {
	Name() string
	Generate(ctx context.Context, subject *Subject) ([]model.Alert, error)
}

// Store is the data access needed by the engine and the built-in generators
type Store interface {
	db.AlertStore
	db.DayOffStore
	db.EmployeeStore
}

// Engine runs every generator for an accepted request and persists the drafts as one batch
type Engine struct {
	store      db.AlertStore
	clock      calendarrules.Clock
	generators []Generator
	logger     *zap.Logger
}

// NewEngine creates an engine running generators in the given order
func NewEngine(store db.AlertStore, clock calendarrules.Clock, logger *zap.Logger, generators ...Generator) *Engine {
	return &Engine{
		store:      store,
		clock:      clock,
		generators: generators,
		logger:     logger,
	}
}

// NewDefaultEngine creates an engine with the Sunday, interval and coverage generators
func NewDefaultEngine(store Store, rules calendarrules.Rules, clock calendarrules.Clock, logger *zap.Logger) *Engine {
	return NewEngine(store, clock, logger,
		NewSundayMissingAlert(store, clock),
		NewShortIntervalAlert(store, rules),
		NewShiftImbalanceAlert(store, rules),
	)
}

// Names returns the generator names in execution order
func (e *Engine) Names() []string {
	names := make([]string, len(e.generators))
	for i, g := range e.generators {
		names[i] = g.Name()
	}
	return names
}

// Run collects alerts from every generator and persists them. A failing generator is logged
// and skipped. Only a persistence failure is returned.
func (e *Engine) Run(ctx context.Context, subject *Subject) ([]model.Alert, error) {
	e.logger.Debug("Generating alerts",
		zap.Int64("employee_id", subject.Request.EmployeeID),
		zap.String("date", subject.Request.Date.Format(calendarrules.DateLayout)))

	var batch []model.Alert
	for _, g := range e.generators {
		drafts, err := g.Generate(ctx, subject)
		if err != nil {
			e.logger.Error("Alert generator failed",
				zap.String("generator", g.Name()),
				zap.Int64("employee_id", subject.Request.EmployeeID),
				zap.String("date", subject.Request.Date.Format(calendarrules.DateLayout)),
				zap.Int("roster_month", subject.Roster.Month),
				zap.Int("roster_year", subject.Roster.Year),
				zap.Error(err))
			continue
		}
		if len(drafts) > 0 {
			e.logger.Debug("Generator produced alerts", zap.String("generator", g.Name()), zap.Int("count", len(drafts)))
		}
		batch = append(batch, drafts...)
	}

	if len(batch) == 0 {
		e.logger.Debug("No alerts generated")
		return []model.Alert{}, nil
	}

	batchID := uuid.New().String()
	now := e.clock.Now()
	for i := range batch {
		batch[i].BatchID = batchID
		batch[i].CreatedAt = now
	}

	if err := e.store.PersistAlerts(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to persist alerts: %w", err)
	}

	e.logger.Info("Alerts persisted", zap.String("batch_id", batchID), zap.Int("count", len(batch)))
	return batch, nil
}
