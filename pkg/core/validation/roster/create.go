package roster

import (
	"context"
	"fmt"

	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
)

// PriorHistoryRequired makes sure the 6x1 rule can be evaluated from the first day of a new roster.
// Without a roster for the previous month, every employee of the shift needs a recorded last day off.
type PriorHistoryRequired struct {
	store Store
}

func NewPriorHistoryRequired(store Store) *PriorHistoryRequired {
	return &PriorHistoryRequired{store: store}
}

func (v *PriorHistoryRequired) Name() string {
	return "PriorHistoryRequired"
}

func (v *PriorHistoryRequired) Validate(ctx context.Context, r *model.Roster) (validation.Result, error) {
	prior, err := v.store.FindPriorRoster(ctx, r.Month, r.Year, r.Shift, r.DepartmentID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to find prior roster: %w", err)
	}
	if prior != nil {
		return validation.OK(), nil
	}

	missing, err := v.store.ExistsEmployeeWithoutHistory(ctx, r.DepartmentID, r.Shift)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to check employee history: %w", err)
	}
	if missing {
		return validation.Invalid("No roster was found for the previous month and some employees have no recorded last day off. " +
			"Record their history before creating the roster."), nil
	}
	return validation.OK(), nil
}

// DuplicateRoster allows only one NEW roster per month, year, shift and department
type DuplicateRoster struct {
	store Store
}

func NewDuplicateRoster(store Store) *DuplicateRoster {
	return &DuplicateRoster{store: store}
}

func (v *DuplicateRoster) Name() string {
	return "DuplicateRoster"
}

func (v *DuplicateRoster) Validate(ctx context.Context, r *model.Roster) (validation.Result, error) {
	exists, err := v.store.ExistsDuplicateRoster(ctx, r.Month, r.Year, r.Shift, r.DepartmentID, model.RosterNew)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to check duplicate roster: %w", err)
	}
	if !exists {
		return validation.OK(), nil
	}

	department, err := v.store.FindDepartmentByID(ctx, r.DepartmentID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to load department: %w", err)
	}
	return validation.Invalid("A roster is already open for %d/%d, shift %s, department %s.",
		r.Month, r.Year, r.Shift, department.Name), nil
}
