package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
)

func TestValidateLastDayOffDate(t *testing.T) {
	f, _ := newFixture(t)

	tests := []struct {
		name  string
		date  time.Time
		valid bool
	}{
		{"day before the minimum", calendarrules.Date(2025, time.April, 23), false},
		{"minimum date", calendarrules.Date(2025, time.April, 24), true},
		{"inside the roster month", calendarrules.Date(2025, time.May, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := f.service.ValidateLastDayOffDate(f.ctx, f.roster.ID, tt.date)
			require.NoError(t, err)

			assert.Equal(t, tt.valid, check.Valid)
			assert.Equal(t, calendarrules.Date(2025, time.April, 24), check.MinimumDate)
			assert.Equal(t, 6, check.MaxConsecutiveWorkDays)
		})
	}
}

func TestValidateLastDayOffDate_Message(t *testing.T) {
	f, _ := newFixture(t)

	check, err := f.service.ValidateLastDayOffDate(f.ctx, f.roster.ID, calendarrules.Date(2025, time.April, 1))
	require.NoError(t, err)

	assert.Equal(t, "The last day off cannot be before 24/04/2025. The employee may work at most 6 days before 01/05/2025.", check.Message)
}

func TestRecordHistory(t *testing.T) {
	f, employees := newFixture(t, "Ana")
	rosterID := f.roster.ID
	date := calendarrules.Date(2025, time.April, 28)

	record, err := f.service.RecordHistory(f.ctx, employees[0].ID, date, &rosterID)
	require.NoError(t, err)

	assert.Nil(t, record.RosterID)
	assert.Equal(t, model.DayOffApproved, record.Status)
	assert.Equal(t, historyJustification, record.Justification)

	e, err := f.store.FindEmployeeByID(f.ctx, employees[0].ID)
	require.NoError(t, err)
	require.NotNil(t, e.LastDayOff)
	assert.Equal(t, date, *e.LastDayOff)

	last, err := f.store.FindLastDayOffBefore(f.ctx, employees[0].ID, calendarrules.Date(2025, time.May, 6), 0)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, date, *last)
}

func TestRecordHistory_CarriesIntoTheRestRule(t *testing.T) {
	f, employees := newFixture(t, "Ana", "Bruno", "Carla", "Davi", "Elis")
	_, err := f.service.RecordHistory(f.ctx, employees[0].ID, calendarrules.Date(2025, time.April, 28), nil)
	require.NoError(t, err)

	_, err = f.service.CreateDayOff(f.ctx, f.request(employees[0], 5))
	business := requireBusinessError(t, err)
	assert.Contains(t, business.Message, "consecutive work days")

	_, err = f.service.CreateDayOff(f.ctx, f.request(employees[0], 4))
	require.NoError(t, err)
}

func TestRecordHistory_TooOld(t *testing.T) {
	f, employees := newFixture(t, "Ana")
	rosterID := f.roster.ID

	_, err := f.service.RecordHistory(f.ctx, employees[0].ID, calendarrules.Date(2025, time.April, 1), &rosterID)

	require.ErrorIs(t, err, model.ErrInvalidLastDayOff)
	e, err := f.store.FindEmployeeByID(f.ctx, employees[0].ID)
	require.NoError(t, err)
	assert.Nil(t, e.LastDayOff)
}

func TestRecordHistory_UnknownEmployee(t *testing.T) {
	f, _ := newFixture(t)

	_, err := f.service.RecordHistory(f.ctx, 404, calendarrules.Date(2025, time.April, 28), nil)

	require.ErrorIs(t, err, model.ErrNotFound)
}
