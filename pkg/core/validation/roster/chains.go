package roster

import (
	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/db"
)

// Store is the data access needed by roster, department and employee rules
type Store interface {
	db.RosterStore
	db.DepartmentStore
	db.EmployeeStore
	db.DayOffStore
}

// NewCreateChain validates a new roster: department, prior history, then duplicates
func NewCreateChain(store Store, logger *zap.Logger) *validation.Chain[*model.Roster] {
	return validation.NewChain[*model.Roster]("roster.create", logger, rosterFields,
		NewDepartmentRequired(store),
		NewPriorHistoryRequired(store),
		NewDuplicateRoster(store),
	)
}

// NewEditChain validates changes to an existing roster
func NewEditChain(store Store, logger *zap.Logger) *validation.Chain[*model.Roster] {
	return validation.NewChain[*model.Roster]("roster.edit", logger, rosterFields,
		NewDepartmentRequired(store),
		NewEditable(store),
	)
}

// NewDeleteChain validates the deletion of a roster
func NewDeleteChain(store Store, logger *zap.Logger) *validation.Chain[*model.Roster] {
	return validation.NewChain[*model.Roster]("roster.delete", logger, rosterFields,
		NewDeletionPossible(store),
	)
}

// NewDepartmentChain validates a new department
func NewDepartmentChain(store db.DepartmentStore, logger *zap.Logger) *validation.Chain[*model.Department] {
	return validation.NewChain[*model.Department]("department.create", logger, func(d *model.Department) []zap.Field {
		return []zap.Field{zap.String("department_name", d.Name)}
	},
		NewDepartmentNameUnique(store),
	)
}

// NewEmployeeChain validates a new employee
func NewEmployeeChain(store Store, logger *zap.Logger) *validation.Chain[*model.Employee] {
	return validation.NewChain[*model.Employee]("employee.create", logger, func(e *model.Employee) []zap.Field {
		return []zap.Field{
			zap.String("employee_name", e.Name),
			zap.Int64("department_id", e.DepartmentID),
			zap.String("shift", string(e.Shift)),
		}
	},
		NewEmployeeFieldsRequired(store),
		NewEmployeeNameUnique(store),
	)
}

func rosterFields(r *model.Roster) []zap.Field {
	return []zap.Field{
		zap.Int64("roster_id", r.ID),
		zap.Int("month", r.Month),
		zap.Int("year", r.Year),
		zap.String("shift", string(r.Shift)),
		zap.Int64("department_id", r.DepartmentID),
		zap.String("status", string(r.Status)),
	}
}
