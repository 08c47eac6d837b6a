package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/db"
	"github.com/jakechorley/leave-roster/pkg/utils/textnorm"
)

// DepartmentRequired checks that a roster references an existing department
type DepartmentRequired struct {
	store db.DepartmentStore
}

func NewDepartmentRequired(store db.DepartmentStore) *DepartmentRequired {
	return &DepartmentRequired{store: store}
}

func (v *DepartmentRequired) Name() string {
	return "DepartmentRequired"
}

func (v *DepartmentRequired) Validate(ctx context.Context, r *model.Roster) (validation.Result, error) {
	if r.DepartmentID == 0 {
		return validation.Invalid("A roster must be linked to a valid department. Provide the department ID."), nil
	}
	if r.DepartmentID < 0 {
		return validation.Invalid("The department ID must be a positive number."), nil
	}

	exists, err := v.store.ExistsDepartment(ctx, r.DepartmentID)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to check department: %w", err)
	}
	if !exists {
		return validation.Invalid("Department not found with ID %d. Create the department before creating the roster.", r.DepartmentID), nil
	}
	return validation.OK(), nil
}

// DepartmentNameUnique rejects a department whose normalized name matches an active department
type DepartmentNameUnique struct {
	store db.DepartmentStore
}

func NewDepartmentNameUnique(store db.DepartmentStore) *DepartmentNameUnique {
	return &DepartmentNameUnique{store: store}
}

func (v *DepartmentNameUnique) Name() string {
	return "DepartmentNameUnique"
}

func (v *DepartmentNameUnique) Validate(ctx context.Context, d *model.Department) (validation.Result, error) {
	if strings.TrimSpace(d.Name) == "" {
		return validation.Invalid("Department name is required."), nil
	}

	exists, err := v.store.ExistsActiveDepartmentWithNormalizedName(ctx, textnorm.Normalize(d.Name))
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to check department name: %w", err)
	}
	if exists {
		return validation.Invalid("A department with a name similar to '%s' already exists. Check that it is not a duplicate.", d.Name), nil
	}
	return validation.OK(), nil
}
