package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
)

func TestCreateRoster(t *testing.T) {
	f, _ := newFixture(t)

	assert.NotZero(t, f.roster.ID)
	assert.Equal(t, model.RosterNew, f.roster.Status)

	_, err := f.service.CreateRoster(f.ctx, &model.Roster{Month: 5, Year: 2025, AllowedDaysOff: 4, Shift: model.ShiftNight, DepartmentID: f.dept.ID})
	business := requireBusinessError(t, err)
	assert.Equal(t, "A roster is already open for 5/2025, shift NIGHT, department ICU.", business.Message)
}

func TestCreateRoster_FieldChecks(t *testing.T) {
	f, _ := newFixture(t)

	tests := []struct {
		name   string
		roster model.Roster
	}{
		{"month out of range", model.Roster{Month: 13, Year: 2025, AllowedDaysOff: 4, Shift: model.ShiftNight, DepartmentID: f.dept.ID}},
		{"negative quota", model.Roster{Month: 6, Year: 2025, AllowedDaysOff: -1, Shift: model.ShiftNight, DepartmentID: f.dept.ID}},
		{"unknown shift", model.Roster{Month: 6, Year: 2025, AllowedDaysOff: 4, Shift: "EVENING", DepartmentID: f.dept.ID}},
		{"unknown department", model.Roster{Month: 6, Year: 2025, AllowedDaysOff: 4, Shift: model.ShiftNight, DepartmentID: 404}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.roster
			_, err := f.service.CreateRoster(f.ctx, &r)
			requireBusinessError(t, err)
		})
	}
}

func TestCreateRoster_RequiresHistoryWithoutPriorRoster(t *testing.T) {
	f, employees := newFixture(t, "Ana")
	next := &model.Roster{Month: 7, Year: 2025, AllowedDaysOff: 4, Shift: model.ShiftNight, DepartmentID: f.dept.ID}

	_, err := f.service.CreateRoster(f.ctx, next)
	business := requireBusinessError(t, err)
	assert.Contains(t, business.Message, "Record their history")

	_, err = f.service.RecordHistory(f.ctx, employees[0].ID, calendarrules.Date(2025, time.June, 28), nil)
	require.NoError(t, err)

	_, err = f.service.CreateRoster(f.ctx, next)
	require.NoError(t, err)
}

func TestCreateRoster_PriorRosterIsEnough(t *testing.T) {
	f, _ := newFixture(t, "Ana")

	june, err := f.service.CreateRoster(f.ctx, &model.Roster{Month: 6, Year: 2025, AllowedDaysOff: 4, Shift: model.ShiftNight, DepartmentID: f.dept.ID})

	require.NoError(t, err)
	assert.Equal(t, model.RosterNew, june.Status)
}

func TestEditRoster(t *testing.T) {
	f, _ := newFixture(t)

	edited := *f.roster
	edited.AllowedDaysOff = 5
	edited.Status = model.RosterClosed

	result, err := f.service.EditRoster(f.ctx, &edited)
	require.NoError(t, err)
	assert.Equal(t, model.RosterNew, result.Status, "editing never changes the lifecycle state")

	stored, err := f.store.FindRosterByID(f.ctx, f.roster.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.AllowedDaysOff)
}

func TestEditRoster_NotFound(t *testing.T) {
	f, _ := newFixture(t)
	missing := *f.roster
	missing.ID = 999

	_, err := f.service.EditRoster(f.ctx, &missing)

	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteRoster(t *testing.T) {
	f, employees := newFixture(t, "Ana", "Bruno")
	created := f.create(t, employees[0], 6)

	require.NoError(t, f.service.DeleteRoster(f.ctx, f.roster.ID))

	_, err := f.store.FindRosterByID(f.ctx, f.roster.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.store.FindDayOffByID(f.ctx, created.Request.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteRoster_WithWorkDays(t *testing.T) {
	f, employees := newFixture(t, "Ana")
	f.store.AddWorkDayRecord(model.WorkDayRecord{RosterID: f.roster.ID, EmployeeID: employees[0].ID, Date: calendarrules.Date(2025, time.May, 2)})

	err := f.service.DeleteRoster(f.ctx, f.roster.ID)

	business := requireBusinessError(t, err)
	assert.Contains(t, business.Message, "1 work day record(s)")
}

func TestCreateDepartment(t *testing.T) {
	f, _ := newFixture(t)

	created, err := f.service.CreateDepartment(f.ctx, "  Pediatria  ")
	require.NoError(t, err)
	assert.Equal(t, "Pediatria", created.Name)
	assert.Equal(t, "pediatria", created.NormalizedName)
	assert.True(t, created.Active)

	_, err = f.service.CreateDepartment(f.ctx, "PEDIATRÍA")
	business := requireBusinessError(t, err)
	assert.Contains(t, business.Message, "similar to 'PEDIATRÍA'")
}

func TestCreateEmployee(t *testing.T) {
	f, employees := newFixture(t, "José Silva")

	assert.Equal(t, "jose silva", employees[0].NormalizedName)
	assert.True(t, employees[0].Active)

	_, err := f.service.CreateEmployee(f.ctx, &model.Employee{Name: "JOSE  SILVA", Shift: model.ShiftNight, DepartmentID: f.dept.ID})
	requireBusinessError(t, err)

	other, err := f.service.CreateEmployee(f.ctx, &model.Employee{Name: "José Silva", Shift: model.ShiftMorning, DepartmentID: f.dept.ID})
	require.NoError(t, err)
	assert.NotEqual(t, employees[0].ID, other.ID)
}
