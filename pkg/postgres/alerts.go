package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/db"
)

const alertColumns = `id, batch_id::text, roster_id, employee_id, day_off_id, type, severity, message,
	recommendation, read, resolved, created_at, resolved_at`

// PersistAlerts inserts a batch of alerts in one transaction and sets their IDs
func (d *DB) PersistAlerts(ctx context.Context, alerts []model.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	return d.RunInTx(ctx, func(tx db.Database) error {
		q := tx.(*DB).q
		for i := range alerts {
			a := &alerts[i]
			batchID, err := uuid.Parse(a.BatchID)
			if err != nil {
				return fmt.Errorf("invalid alert batch id %q: %w", a.BatchID, err)
			}
			err = q.QueryRow(ctx, `
				INSERT INTO alert (batch_id, roster_id, employee_id, day_off_id, type, severity, message,
					recommendation, read, resolved, created_at, resolved_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				RETURNING id
			`, batchID, a.RosterID, a.EmployeeID, a.DayOffID, string(a.Type), int16(a.Severity), a.Message,
				a.Recommendation, a.Read, a.Resolved, a.CreatedAt.UTC(), a.ResolvedAt).Scan(&a.ID)
			if err != nil {
				return fmt.Errorf("failed to insert alert: %w", err)
			}
		}
		return nil
	})
}

func (d *DB) queryAlerts(ctx context.Context, where string, args ...any) ([]model.Alert, error) {
	rows, err := d.q.Query(ctx, `
		SELECT `+alertColumns+`
		FROM alert
		WHERE `+where+`
		ORDER BY severity, created_at, id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		var a model.Alert
		var alertType string
		var severity int16
		if err := rows.Scan(&a.ID, &a.BatchID, &a.RosterID, &a.EmployeeID, &a.DayOffID, &alertType, &severity, &a.Message,
			&a.Recommendation, &a.Read, &a.Resolved, &a.CreatedAt, &a.ResolvedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.Type = model.AlertType(alertType)
		a.Severity = model.Severity(severity)
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}

	return alerts, nil
}

// FindUnresolvedAlertsByRoster retrieves the roster's unresolved alerts, most severe first
func (d *DB) FindUnresolvedAlertsByRoster(ctx context.Context, rosterID int64) ([]model.Alert, error) {
	return d.queryAlerts(ctx, `roster_id = $1 AND NOT resolved`, rosterID)
}

// FindAlertsByDayOff retrieves every alert of a day-off request, most severe first
func (d *DB) FindAlertsByDayOff(ctx context.Context, dayOffID int64) ([]model.Alert, error) {
	return d.queryAlerts(ctx, `day_off_id = $1`, dayOffID)
}

// MarkAlertRead flags an alert as read
func (d *DB) MarkAlertRead(ctx context.Context, id int64) error {
	tag, err := d.q.Exec(ctx, `UPDATE alert SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	return requireAffected(tag, "alert", id)
}

// MarkAlertResolved flags an alert as resolved at resolvedAt
func (d *DB) MarkAlertResolved(ctx context.Context, id int64, resolvedAt time.Time) error {
	tag, err := d.q.Exec(ctx, `UPDATE alert SET resolved = TRUE, resolved_at = $2 WHERE id = $1`, id, resolvedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to mark alert resolved: %w", err)
	}
	return requireAffected(tag, "alert", id)
}

// CountCriticalAlerts counts the roster's unresolved CRITICAL alerts
func (d *DB) CountCriticalAlerts(ctx context.Context, rosterID int64) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM alert WHERE roster_id = $1 AND NOT resolved AND severity = $2
	`, rosterID, int16(model.SeverityCritical)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count critical alerts: %w", err)
	}
	return count, nil
}
