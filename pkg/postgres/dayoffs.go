package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

const dayOffColumns = `id, employee_id, roster_id, date, status, justification, created_at`

func scanDayOff(row pgx.Row) (model.DayOffRequest, error) {
	var r model.DayOffRequest
	var status string
	if err := row.Scan(&r.ID, &r.EmployeeID, &r.RosterID, &r.Date, &status, &r.Justification, &r.CreatedAt); err != nil {
		return model.DayOffRequest{}, err
	}
	r.Status = model.DayOffStatus(status)
	return r, nil
}

func statusNames(statuses []model.DayOffStatus) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}

func (d *DB) queryDayOffs(ctx context.Context, sql string, args ...any) ([]model.DayOffRequest, error) {
	rows, err := d.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query day offs: %w", err)
	}
	defer rows.Close()

	var requests []model.DayOffRequest
	for rows.Next() {
		r, err := scanDayOff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day off: %w", err)
		}
		requests = append(requests, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating day offs: %w", err)
	}

	return requests, nil
}

// FindDayOffByID retrieves a day-off request
func (d *DB) FindDayOffByID(ctx context.Context, id int64) (*model.DayOffRequest, error) {
	r, err := scanDayOff(d.q.QueryRow(ctx, `SELECT `+dayOffColumns+` FROM day_off_request WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to query day off: %w", notFound(err, "day-off request", id))
	}
	return &r, nil
}

// FindDayOffRequestsOnDate retrieves the roster's requests on a date with one of the statuses
func (d *DB) FindDayOffRequestsOnDate(ctx context.Context, rosterID int64, date time.Time, statuses []model.DayOffStatus) ([]model.DayOffRequest, error) {
	return d.queryDayOffs(ctx, `
		SELECT `+dayOffColumns+`
		FROM day_off_request
		WHERE roster_id = $1 AND date = $2 AND status = ANY($3)
		ORDER BY id
	`, rosterID, date, statusNames(statuses))
}

// FindLastDayOffBefore returns the employee's latest active day off before date in any roster or history
func (d *DB) FindLastDayOffBefore(ctx context.Context, employeeID int64, date time.Time, excludeID int64) (*time.Time, error) {
	var last *time.Time
	err := d.q.QueryRow(ctx, `
		SELECT MAX(date)
		FROM day_off_request
		WHERE employee_id = $1 AND date < $2 AND id <> $3 AND status = ANY($4)
	`, employeeID, date, excludeID, statusNames(model.ActiveDayOffStatuses)).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("failed to query last day off: %w", err)
	}
	return last, nil
}

// CountDayOffRequests counts the employee's requests in a roster with one of the statuses
func (d *DB) CountDayOffRequests(ctx context.Context, employeeID, rosterID int64, statuses []model.DayOffStatus, excludeID int64) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM day_off_request
		WHERE employee_id = $1 AND roster_id = $2 AND status = ANY($3) AND id <> $4
	`, employeeID, rosterID, statusNames(statuses), excludeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count day offs: %w", err)
	}
	return count, nil
}

// ExistsDayOffOnDate reports whether the employee already has a request on date with one of the statuses
func (d *DB) ExistsDayOffOnDate(ctx context.Context, employeeID int64, date time.Time, statuses []model.DayOffStatus, excludeID int64) (bool, error) {
	var exists bool
	err := d.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM day_off_request
			WHERE employee_id = $1 AND date = $2 AND status = ANY($3) AND id <> $4
		)
	`, employeeID, date, statusNames(statuses), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check day off on date: %w", err)
	}
	return exists, nil
}

// ExistsSundayDayOffThisMonth reports whether the employee has an active Sunday day off in the month
func (d *DB) ExistsSundayDayOffThisMonth(ctx context.Context, employeeID int64, month, year int, excludeID int64) (bool, error) {
	var exists bool
	err := d.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM day_off_request
			WHERE employee_id = $1
			  AND EXTRACT(DOW FROM date) = 0
			  AND EXTRACT(MONTH FROM date) = $2
			  AND EXTRACT(YEAR FROM date) = $3
			  AND status = ANY($4)
			  AND id <> $5
		)
	`, employeeID, month, year, statusNames(model.ActiveDayOffStatuses), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check Sunday day off: %w", err)
	}
	return exists, nil
}

// FindDayOffRequests retrieves the employee's requests in a roster with one of the statuses, ordered by date
func (d *DB) FindDayOffRequests(ctx context.Context, employeeID, rosterID int64, statuses []model.DayOffStatus, excludeID int64) ([]model.DayOffRequest, error) {
	return d.queryDayOffs(ctx, `
		SELECT `+dayOffColumns+`
		FROM day_off_request
		WHERE employee_id = $1 AND roster_id = $2 AND status = ANY($3) AND id <> $4
		ORDER BY date, id
	`, employeeID, rosterID, statusNames(statuses), excludeID)
}

// ListRosterDayOffs retrieves every request of a roster, ordered by date
func (d *DB) ListRosterDayOffs(ctx context.Context, rosterID int64) ([]model.DayOffRequest, error) {
	return d.queryDayOffs(ctx, `
		SELECT `+dayOffColumns+`
		FROM day_off_request
		WHERE roster_id = $1
		ORDER BY date, id
	`, rosterID)
}

// PersistDayOffRequest inserts a request and sets its ID
func (d *DB) PersistDayOffRequest(ctx context.Context, request *model.DayOffRequest) error {
	err := d.q.QueryRow(ctx, `
		INSERT INTO day_off_request (employee_id, roster_id, date, status, justification, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, request.EmployeeID, request.RosterID, request.Date, string(request.Status), request.Justification, request.CreatedAt.UTC()).Scan(&request.ID)
	if err != nil {
		return fmt.Errorf("failed to insert day off: %w", err)
	}
	return nil
}

// UpdateDayOffRequest overwrites the date, status and justification of a request
func (d *DB) UpdateDayOffRequest(ctx context.Context, request *model.DayOffRequest) error {
	tag, err := d.q.Exec(ctx, `
		UPDATE day_off_request
		SET date = $2, status = $3, justification = $4
		WHERE id = $1
	`, request.ID, request.Date, string(request.Status), request.Justification)
	if err != nil {
		return fmt.Errorf("failed to update day off: %w", err)
	}
	return requireAffected(tag, "day-off request", request.ID)
}

// DeleteDayOffRequest deletes a request. Its alerts are removed by cascade.
func (d *DB) DeleteDayOffRequest(ctx context.Context, id int64) error {
	tag, err := d.q.Exec(ctx, `DELETE FROM day_off_request WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete day off: %w", err)
	}
	return requireAffected(tag, "day-off request", id)
}
