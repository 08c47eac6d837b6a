package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/leave-roster/pkg/core/model"
)

func TestMemoryDB_AlertsMostSevereFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDB()
	base := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	dayOffID := int64(42)

	alert := func(severity model.Severity, offset time.Duration) model.Alert {
		id := dayOffID
		return model.Alert{
			BatchID:    "batch",
			RosterID:   1,
			EmployeeID: 1,
			DayOffID:   &id,
			Type:       model.AlertShortInterval,
			Severity:   severity,
			Message:    severity.String(),
			CreatedAt:  base.Add(offset),
		}
	}

	alerts := []model.Alert{
		alert(model.SeverityInfo, 0),
		alert(model.SeverityMedium, time.Minute),
		alert(model.SeverityCritical, 2*time.Minute),
		alert(model.SeverityLow, 0),
		alert(model.SeverityHigh, time.Minute),
		alert(model.SeverityMedium, 0),
	}
	require.NoError(t, store.PersistAlerts(ctx, alerts))

	want := []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityMedium,
		model.SeverityLow,
		model.SeverityInfo,
	}

	byRoster, err := store.FindUnresolvedAlertsByRoster(ctx, 1)
	require.NoError(t, err)
	byDayOff, err := store.FindAlertsByDayOff(ctx, dayOffID)
	require.NoError(t, err)

	for _, got := range [][]model.Alert{byRoster, byDayOff} {
		require.Len(t, got, len(want))
		for i, a := range got {
			assert.Equal(t, want[i], a.Severity, "position %d", i)
		}
		// equal severities fall back to creation time
		assert.Equal(t, alerts[5].ID, got[2].ID)
		assert.Equal(t, alerts[1].ID, got[3].ID)
	}
}

func TestMemoryDB_ResolvedAlertsAreHidden(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDB()
	alerts := []model.Alert{
		{RosterID: 1, Severity: model.SeverityCritical},
		{RosterID: 1, Severity: model.SeverityLow},
	}
	require.NoError(t, store.PersistAlerts(ctx, alerts))
	require.NoError(t, store.MarkAlertResolved(ctx, alerts[0].ID, time.Now()))

	got, err := store.FindUnresolvedAlertsByRoster(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.SeverityLow, got[0].Severity)

	count, err := store.CountCriticalAlerts(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}
