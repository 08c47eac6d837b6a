package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

// FindDepartmentByID retrieves a department
func (d *DB) FindDepartmentByID(ctx context.Context, id int64) (*model.Department, error) {
	var dep model.Department
	err := d.q.QueryRow(ctx, `
		SELECT id, name, normalized_name, active
		FROM department
		WHERE id = $1
	`, id).Scan(&dep.ID, &dep.Name, &dep.NormalizedName, &dep.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to query department: %w", notFound(err, "department", id))
	}
	return &dep, nil
}

// ExistsDepartment reports whether a department with the given ID exists
func (d *DB) ExistsDepartment(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := d.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM department WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check department: %w", err)
	}
	return exists, nil
}

// ExistsActiveDepartmentWithNormalizedName reports whether an active department already uses the normalized name
func (d *DB) ExistsActiveDepartmentWithNormalizedName(ctx context.Context, normalizedName string) (bool, error) {
	var exists bool
	err := d.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM department WHERE active AND normalized_name = $1)
	`, normalizedName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check department name: %w", err)
	}
	return exists, nil
}

// InsertDepartment inserts a department and sets its ID
func (d *DB) InsertDepartment(ctx context.Context, department *model.Department) error {
	err := d.q.QueryRow(ctx, `
		INSERT INTO department (name, normalized_name, active)
		VALUES ($1, $2, $3)
		RETURNING id
	`, department.Name, department.NormalizedName, department.Active).Scan(&department.ID)
	if err != nil {
		return fmt.Errorf("failed to insert department: %w", err)
	}
	return nil
}
