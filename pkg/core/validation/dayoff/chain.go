package dayoff

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// Candidate is a day-off request under validation together with the entities it refers to
type Candidate struct {
	Request  *model.DayOffRequest
	Employee *model.Employee
	Roster   *model.Roster
}

// Store is the data access needed to validate day-off requests
type Store interface {
	db.DayOffStore
	db.RosterStore
	db.EmployeeStore
}

// Chain validates a day-off request against every admissibility rule, in order
type Chain struct {
	store  Store
	chain  *validation.Chain[*Candidate]
	logger *zap.Logger
}

// NewChain creates the day-off validator chain.
// Order: duplicate, quota, consecutive work days, mandatory Sunday, weekly distribution.
func NewChain(store Store, rules calendarrules.Rules, logger *zap.Logger) *Chain {
	return &Chain{
		store: store,
		chain: validation.NewChain[*Candidate]("dayoff", logger, candidateFields,
			NewDuplicateCheck(store),
			NewQuotaCheck(store),
			NewConsecutiveWorkDaysCheck(store, rules),
			NewMandatorySundayCheck(store),
			NewWeeklyDistributionCheck(store),
		),
		logger: logger,
	}
}

// Names returns the validator names in execution order
func (c *Chain) Names() []string {
	return c.chain.Names()
}

// Validate loads the request's roster and employee and runs the chain.
// A missing roster or employee is returned as a *model.NotFoundError.
func (c *Chain) Validate(ctx context.Context, request *model.DayOffRequest) (validation.Result, error) {
	if request.RosterID == nil {
		return validation.Invalid("A day-off request must belong to a roster."), nil
	}

	roster, err := c.store.FindRosterByID(ctx, *request.RosterID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to load roster: %w", err)
	}

	employee, err := c.store.FindEmployeeByID(ctx, request.EmployeeID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to load employee: %w", err)
	}

	return c.ValidateCandidate(ctx, &Candidate{Request: request, Employee: employee, Roster: roster})
}

// ValidateCandidate runs the chain on an already loaded candidate
func (c *Chain) ValidateCandidate(ctx context.Context, candidate *Candidate) (validation.Result, error) {
	return c.chain.Validate(ctx, candidate)
}

func candidateFields(c *Candidate) []zap.Field {
	return []zap.Field{
		zap.Int64("employee_id", c.Request.EmployeeID),
		zap.String("date", c.Request.Date.Format(calendarrules.DateLayout)),
		zap.Int("roster_month", c.Roster.Month),
		zap.Int("roster_year", c.Roster.Year),
	}
}
