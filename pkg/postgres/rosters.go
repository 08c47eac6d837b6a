package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

const rosterColumns = `id, month, year, allowed_days_off, shift, department_id, status`

func scanRoster(row pgx.Row) (model.Roster, error) {
	var r model.Roster
	var shift, status string
	if err := row.Scan(&r.ID, &r.Month, &r.Year, &r.AllowedDaysOff, &shift, &r.DepartmentID, &status); err != nil {
		return model.Roster{}, err
	}
	r.Shift = model.Shift(shift)
	r.Status = model.RosterStatus(status)
	return r, nil
}

// FindRosterByID retrieves a roster
func (d *DB) FindRosterByID(ctx context.Context, id int64) (*model.Roster, error) {
	r, err := scanRoster(d.q.QueryRow(ctx, `SELECT `+rosterColumns+` FROM roster WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", notFound(err, "roster", id))
	}
	return &r, nil
}

// ExistsDuplicateRoster reports whether a roster with the same period, shift, department and status exists
func (d *DB) ExistsDuplicateRoster(ctx context.Context, month, year int, shift model.Shift, departmentID int64, status model.RosterStatus) (bool, error) {
	var exists bool
	err := d.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM roster
			WHERE month = $1 AND year = $2 AND shift = $3 AND department_id = $4 AND status = $5
		)
	`, month, year, string(shift), departmentID, string(status)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate roster: %w", err)
	}
	return exists, nil
}

// FindPriorRoster retrieves the latest roster of the month before (month, year), or nil
func (d *DB) FindPriorRoster(ctx context.Context, month, year int, shift model.Shift, departmentID int64) (*model.Roster, error) {
	prior := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	r, err := scanRoster(d.q.QueryRow(ctx, `
		SELECT `+rosterColumns+`
		FROM roster
		WHERE month = $1 AND year = $2 AND shift = $3 AND department_id = $4
		ORDER BY id DESC
		LIMIT 1
	`, int(prior.Month()), prior.Year(), string(shift), departmentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query prior roster: %w", err)
	}
	return &r, nil
}

// InsertRoster inserts a roster and sets its ID
func (d *DB) InsertRoster(ctx context.Context, roster *model.Roster) error {
	err := d.q.QueryRow(ctx, `
		INSERT INTO roster (month, year, allowed_days_off, shift, department_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, roster.Month, roster.Year, roster.AllowedDaysOff, string(roster.Shift), roster.DepartmentID, string(roster.Status)).Scan(&roster.ID)
	if err != nil {
		return fmt.Errorf("failed to insert roster: %w", err)
	}
	return nil
}

// UpdateRoster overwrites every field of a roster
func (d *DB) UpdateRoster(ctx context.Context, roster *model.Roster) error {
	tag, err := d.q.Exec(ctx, `
		UPDATE roster
		SET month = $2, year = $3, allowed_days_off = $4, shift = $5, department_id = $6, status = $7
		WHERE id = $1
	`, roster.ID, roster.Month, roster.Year, roster.AllowedDaysOff, string(roster.Shift), roster.DepartmentID, string(roster.Status))
	if err != nil {
		return fmt.Errorf("failed to update roster: %w", err)
	}
	return requireAffected(tag, "roster", roster.ID)
}

// DeleteRoster deletes a roster. Its day-off requests and alerts are removed by cascade.
func (d *DB) DeleteRoster(ctx context.Context, id int64) error {
	tag, err := d.q.Exec(ctx, `DELETE FROM roster WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete roster: %w", err)
	}
	return requireAffected(tag, "roster", id)
}

// CountWorkDayRecords counts the worked days recorded under a roster
func (d *DB) CountWorkDayRecords(ctx context.Context, rosterID int64) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `SELECT COUNT(*) FROM work_day_record WHERE roster_id = $1`, rosterID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count work day records: %w", err)
	}
	return count, nil
}
