package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/utils/textnorm"
)

// EmployeeFieldsRequired checks name, shift and department of a new employee
type EmployeeFieldsRequired struct {
	store Store
}

func NewEmployeeFieldsRequired(store Store) *EmployeeFieldsRequired {
	return &EmployeeFieldsRequired{store: store}
}

func (v *EmployeeFieldsRequired) Name() string {
	return "EmployeeFieldsRequired"
}

func (v *EmployeeFieldsRequired) Validate(ctx context.Context, e *model.Employee) (validation.Result, error) {
	if strings.TrimSpace(e.Name) == "" {
		return validation.Invalid("Employee name is required."), nil
	}
	if !e.Shift.IsValid() {
		return validation.Invalid("Shift must be one of %s, %s or %s.", model.ShiftMorning, model.ShiftAfternoon, model.ShiftNight), nil
	}
	if e.DepartmentID <= 0 {
		return validation.Invalid("Department is required."), nil
	}

	exists, err := v.store.ExistsDepartment(ctx, e.DepartmentID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to check department: %w", err)
	}
	if !exists {
		return validation.Invalid("Department not found with ID %d.", e.DepartmentID), nil
	}
	return validation.OK(), nil
}

// EmployeeNameUnique rejects an employee whose normalized name already exists in the same
// department and shift. Homonyms elsewhere are allowed.
type EmployeeNameUnique struct {
	store Store
}

func NewEmployeeNameUnique(store Store) *EmployeeNameUnique {
	return &EmployeeNameUnique{store: store}
}

func (v *EmployeeNameUnique) Name() string {
	return "EmployeeNameUnique"
}

func (v *EmployeeNameUnique) Validate(ctx context.Context, e *model.Employee) (validation.Result, error) {
	exists, err := v.store.ExistsEmployeeWithNormalizedName(ctx, e.DepartmentID, e.Shift, textnorm.Normalize(e.Name))
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to check employee name: %w", err)
	}
	if !exists {
		return validation.OK(), nil
	}

	department, err := v.store.FindDepartmentByID(ctx, e.DepartmentID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to load department: %w", err)
	}
	return validation.Invalid("An employee with a name similar to '%s' already exists in department %s, shift %s. Check that it is not a duplicate.",
		e.Name, department.Name, e.Shift), nil
}
