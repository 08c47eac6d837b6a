package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/leave-roster/pkg/core/calendar"
	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
)

func TestScenario_SundayThenShortInterval(t *testing.T) {
	f, employees := newFixture(t, "Ana", "Bruno", "Carla", "Davi", "Elis")
	ana := employees[0]

	// Sunday with no prior history: accepted and no Sunday alert
	first := f.create(t, ana, 4)
	assert.NotContains(t, alertTypes(first.Alerts), model.AlertSundayMissing)
	assert.Empty(t, first.Alerts)

	// Five work days after the Sunday
	second := f.create(t, ana, 10)
	assert.Empty(t, second.Alerts)

	// One day after the previous day off: accepted with a short interval alert
	third := f.create(t, ana, 11)
	require.Equal(t, []model.AlertType{model.AlertShortInterval}, alertTypes(third.Alerts))
	assert.Equal(t, model.SeverityMedium, third.Alerts[0].Severity)
	assert.Contains(t, third.Alerts[0].Message, "1 day(s)")

	// The last slot would leave weeks 3 to 5 uncovered
	_, err := f.service.CreateDayOff(f.ctx, f.request(ana, 12))
	business := requireBusinessError(t, err)
	assert.Contains(t, business.Message, "would reach the limit of 4 day(s) off")
}

func TestScenario_ConsecutiveBoundary(t *testing.T) {
	tests := []struct {
		name     string
		day      int
		accepted bool
	}{
		{"six days later", 10, true},
		{"seven days later", 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, employees := newFixture(t, "Ana", "Bruno", "Carla", "Davi", "Elis")
			f.create(t, employees[0], 4)

			_, err := f.service.CreateDayOff(f.ctx, f.request(employees[0], tt.day))

			if tt.accepted {
				require.NoError(t, err)
				return
			}
			business := requireBusinessError(t, err)
			assert.Contains(t, business.Message, "(6 days worked)")
		})
	}
}

func TestScenario_PublishedRosterIsFrozen(t *testing.T) {
	f, employees := newFixture(t, "Ana", "Bruno")
	created := f.create(t, employees[0], 4)

	created.Request.Status = model.DayOffApproved
	require.NoError(t, f.store.UpdateDayOffRequest(f.ctx, created.Request))
	f.roster.Status = model.RosterPublished
	require.NoError(t, f.store.UpdateRoster(f.ctx, f.roster))

	edited := *f.roster
	edited.AllowedDaysOff = 6
	_, err := f.service.EditRoster(f.ctx, &edited)
	business := requireBusinessError(t, err)
	assert.Contains(t, business.Message, "PUBLISHED")

	err = f.service.DeleteRoster(f.ctx, f.roster.ID)
	business = requireBusinessError(t, err)
	assert.Contains(t, business.Message, "approved")

	stored, err := f.store.FindRosterByID(f.ctx, f.roster.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.AllowedDaysOff)
}

func TestScenario_AlertLifecycle(t *testing.T) {
	f, employees := newFixture(t, "Ana", "Bruno")

	// Two of two employees off on a Tuesday: Sunday missing for Bruno and coverage imbalance
	f.create(t, employees[0], 6)
	result := f.create(t, employees[1], 6)
	require.ElementsMatch(t, []model.AlertType{model.AlertSundayMissing, model.AlertShiftImbalance}, alertTypes(result.Alerts))
	assert.Equal(t, result.Alerts[0].BatchID, result.Alerts[1].BatchID)

	alerts, err := f.service.RosterAlerts(f.ctx, f.roster.ID)
	require.NoError(t, err)
	require.NotEmpty(t, alerts)
	for i := 1; i < len(alerts); i++ {
		assert.False(t, alerts[i].Severity.MoreSevereThan(alerts[i-1].Severity), "alerts are ordered by severity")
	}

	dayOffAlerts, err := f.service.DayOffAlerts(f.ctx, result.Request.ID)
	require.NoError(t, err)
	assert.Len(t, dayOffAlerts, 2)

	target := dayOffAlerts[0].ID
	require.NoError(t, f.service.MarkAlertRead(f.ctx, target))
	require.NoError(t, f.service.MarkAlertResolved(f.ctx, target))

	remaining, err := f.service.RosterAlerts(f.ctx, f.roster.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, len(alerts)-1)
	for _, a := range remaining {
		assert.NotEqual(t, target, a.ID)
	}

	resolved, err := f.service.DayOffAlerts(f.ctx, result.Request.ID)
	require.NoError(t, err)
	for _, a := range resolved {
		if a.ID == target {
			assert.True(t, a.Read)
			assert.True(t, a.Resolved)
			require.NotNil(t, a.ResolvedAt)
			assert.Equal(t, may1, *a.ResolvedAt)
		}
	}

	critical, err := f.service.CountCriticalAlerts(f.ctx, f.roster.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, critical)

	require.ErrorIs(t, f.service.MarkAlertRead(f.ctx, 999), model.ErrNotFound)
}

func TestScenario_CalendarReflectsRequests(t *testing.T) {
	f, employees := newFixture(t, "Ana", "Bruno", "Carla", "Davi")
	f.create(t, employees[0], 6)
	f.create(t, employees[1], 6)

	view, err := f.service.GenerateCalendar(f.ctx, f.roster.ID)
	require.NoError(t, err)

	day := view.Days[5]
	assert.Equal(t, calendarrules.Date(2025, time.May, 6), day.Date)
	assert.Equal(t, calendar.DayOccupied, day.Status)
	assert.Equal(t, 2, day.ActiveCount)
	assert.Equal(t, 2, view.Summary.Allocated)

	missing, err := f.service.CheckMissingHistory(f.ctx, f.roster.ID)
	require.NoError(t, err)
	assert.True(t, missing.Missing)
	assert.Len(t, missing.Employees, 2, "employees who took a day off this month have a recent last day off")
}
