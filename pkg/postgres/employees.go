package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

const employeeColumns = `id, name, normalized_name, role, shift, department_id, active, last_day_off`

func scanEmployee(row pgx.Row) (model.Employee, error) {
	var e model.Employee
	var shift string
	if err := row.Scan(&e.ID, &e.Name, &e.NormalizedName, &e.Role, &shift, &e.DepartmentID, &e.Active, &e.LastDayOff); err != nil {
		return model.Employee{}, err
	}
	e.Shift = model.Shift(shift)
	return e, nil
}

// FindEmployeeByID retrieves an employee
func (d *DB) FindEmployeeByID(ctx context.Context, id int64) (*model.Employee, error) {
	e, err := scanEmployee(d.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employee WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to query employee: %w", notFound(err, "employee", id))
	}
	return &e, nil
}

// FindEmployeesByDepartmentAndShift retrieves the active employees of a shift ordered by name
func (d *DB) FindEmployeesByDepartmentAndShift(ctx context.Context, departmentID int64, shift model.Shift) ([]model.Employee, error) {
	rows, err := d.q.Query(ctx, `
		SELECT `+employeeColumns+`
		FROM employee
		WHERE active AND department_id = $1 AND shift = $2
		ORDER BY name, id
	`, departmentID, string(shift))
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// CountEmployeesInShift counts the active employees of a shift
func (d *DB) CountEmployeesInShift(ctx context.Context, departmentID int64, shift model.Shift) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM employee WHERE active AND department_id = $1 AND shift = $2
	`, departmentID, string(shift)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// ExistsEmployeeWithoutHistory reports whether an active employee of the shift has no recorded last day off
func (d *DB) ExistsEmployeeWithoutHistory(ctx context.Context, departmentID int64, shift model.Shift) (bool, error) {
	var exists bool
	err := d.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM employee
			WHERE active AND department_id = $1 AND shift = $2 AND last_day_off IS NULL
		)
	`, departmentID, string(shift)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee history: %w", err)
	}
	return exists, nil
}

// ExistsEmployeeWithNormalizedName reports whether an active employee of the shift already uses the normalized name
func (d *DB) ExistsEmployeeWithNormalizedName(ctx context.Context, departmentID int64, shift model.Shift, normalizedName string) (bool, error) {
	var exists bool
	err := d.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM employee
			WHERE active AND department_id = $1 AND shift = $2 AND normalized_name = $3
		)
	`, departmentID, string(shift), normalizedName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee name: %w", err)
	}
	return exists, nil
}

// InsertEmployee inserts an employee and sets its ID
func (d *DB) InsertEmployee(ctx context.Context, employee *model.Employee) error {
	err := d.q.QueryRow(ctx, `
		INSERT INTO employee (name, normalized_name, role, shift, department_id, active, last_day_off)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, employee.Name, employee.NormalizedName, employee.Role, string(employee.Shift),
		employee.DepartmentID, employee.Active, employee.LastDayOff).Scan(&employee.ID)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// UpdateEmployeeLastDayOff sets the employee's last day off, or clears it when date is nil
func (d *DB) UpdateEmployeeLastDayOff(ctx context.Context, employeeID int64, date *time.Time) error {
	tag, err := d.q.Exec(ctx, `UPDATE employee SET last_day_off = $2 WHERE id = $1`, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to update last day off: %w", err)
	}
	return requireAffected(tag, "employee", employeeID)
}
