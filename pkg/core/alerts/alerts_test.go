package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/db"
)

var now = time.Date(2025, time.May, 6, 10, 30, 0, 0, time.UTC)

type fixture struct {
	ctx    context.Context
	store  *db.MemoryDB
	roster *model.Roster
	dept   *model.Department
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := db.NewMemoryDB()
	dept := &model.Department{Name: "ICU", NormalizedName: "icu", Active: true}
	require.NoError(t, store.InsertDepartment(ctx, dept))
	roster := &model.Roster{Month: 5, Year: 2025, AllowedDaysOff: 4, Shift: model.ShiftNight, DepartmentID: dept.ID, Status: model.RosterNew}
	require.NoError(t, store.InsertRoster(ctx, roster))
	return &fixture{ctx: ctx, store: store, roster: roster, dept: dept}
}

func (f *fixture) addEmployee(t *testing.T, name string) *model.Employee {
	t.Helper()
	e := &model.Employee{Name: name, NormalizedName: name, Shift: model.ShiftNight, DepartmentID: f.dept.ID, Active: true}
	require.NoError(t, f.store.InsertEmployee(f.ctx, e))
	return e
}

func (f *fixture) addDayOff(t *testing.T, e *model.Employee, day int) *model.DayOffRequest {
	t.Helper()
	rosterID := f.roster.ID
	req := &model.DayOffRequest{EmployeeID: e.ID, RosterID: &rosterID, Date: calendarrules.Date(2025, time.May, day), Status: model.DayOffPending}
	require.NoError(t, f.store.PersistDayOffRequest(f.ctx, req))
	return req
}

func (f *fixture) subject(e *model.Employee, req *model.DayOffRequest) *Subject {
	return &Subject{Request: req, Employee: e, Roster: f.roster}
}

// stubGenerator returns fixed drafts or a fixed error
type stubGenerator struct {
	name   string
	alerts []model.AlertType
	err    error
}

func (g *stubGenerator) Name() string {
	return g.name
}

func (g *stubGenerator) Generate(ctx context.Context, s *Subject) ([]model.Alert, error) {
	if g.err != nil {
		return nil, g.err
	}
	var out []model.Alert
	for _, at := range g.alerts {
		out = append(out, model.NewAlert(s.Request, s.Roster.ID, at, g.name, ""))
	}
	return out, nil
}

// failingAlertStore rejects every batch
type failingAlertStore struct {
	*db.MemoryDB
}

func (s *failingAlertStore) PersistAlerts(ctx context.Context, alerts []model.Alert) error {
	return errors.New("disk full")
}

func TestEngine_BestEffortBatch(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Ana")
	req := f.addDayOff(t, e, 6)

	core, logs := observer.New(zapcore.ErrorLevel)
	engine := NewEngine(f.store, calendarrules.FixedClock{At: now}, zap.New(core),
		&stubGenerator{name: "first", alerts: []model.AlertType{model.AlertSundayMissing}},
		&stubGenerator{name: "broken", err: errors.New("query timeout")},
		&stubGenerator{name: "last", alerts: []model.AlertType{model.AlertShortInterval, model.AlertShiftImbalance}},
	)

	alerts, err := engine.Run(f.ctx, f.subject(e, req))
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	batchID := alerts[0].BatchID
	assert.NotEmpty(t, batchID)
	for _, a := range alerts {
		assert.NotZero(t, a.ID)
		assert.Equal(t, batchID, a.BatchID)
		assert.Equal(t, now, a.CreatedAt)
		require.NotNil(t, a.DayOffID)
		assert.Equal(t, req.ID, *a.DayOffID)
	}
	assert.Equal(t, []string{"first", "last", "last"}, []string{alerts[0].Message, alerts[1].Message, alerts[2].Message})

	stored, err := f.store.FindAlertsByDayOff(f.ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "broken", entry.ContextMap()["generator"])
	assert.Equal(t, e.ID, entry.ContextMap()["employee_id"])
}

func TestEngine_BatchesAreDistinct(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Ana")
	engine := NewEngine(f.store, calendarrules.FixedClock{At: now}, zap.NewNop(),
		&stubGenerator{name: "one", alerts: []model.AlertType{model.AlertSundayMissing}})

	first, err := engine.Run(f.ctx, f.subject(e, f.addDayOff(t, e, 6)))
	require.NoError(t, err)
	second, err := engine.Run(f.ctx, f.subject(e, f.addDayOff(t, e, 12)))
	require.NoError(t, err)

	assert.NotEqual(t, first[0].BatchID, second[0].BatchID)
}

func TestEngine_NoAlerts(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Ana")
	engine := NewEngine(&failingAlertStore{MemoryDB: f.store}, calendarrules.FixedClock{At: now}, zap.NewNop(),
		&stubGenerator{name: "quiet"})

	alerts, err := engine.Run(f.ctx, f.subject(e, f.addDayOff(t, e, 6)))

	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestEngine_PersistFailure(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Ana")
	engine := NewEngine(&failingAlertStore{MemoryDB: f.store}, calendarrules.FixedClock{At: now}, zap.NewNop(),
		&stubGenerator{name: "one", alerts: []model.AlertType{model.AlertSundayMissing}})

	_, err := engine.Run(f.ctx, f.subject(e, f.addDayOff(t, e, 6)))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestNewDefaultEngine_Order(t *testing.T) {
	f := newFixture(t)
	engine := NewDefaultEngine(f.store, calendarrules.DefaultRules(), calendarrules.FixedClock{At: now}, zap.NewNop())

	assert.Equal(t, []string{"SundayMissingAlert", "ShortIntervalAlert", "ShiftImbalanceAlert"}, engine.Names())
}

func TestSundayMissingAlert(t *testing.T) {
	f := newFixture(t)
	e := f.addEmployee(t, "Ana")
	req := f.addDayOff(t, e, 6)

	alerts, err := NewSundayMissingAlert(f.store, calendarrules.FixedClock{At: now}).Generate(f.ctx, f.subject(e, req))
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, model.AlertSundayMissing, a.Type)
	assert.Equal(t, model.SeverityHigh, a.Severity)
	assert.Equal(t, "Ana has no Sunday off yet in 05/2025. Days off remaining: 3. Available Sundays: 11/05, 18/05, 25/05.", a.Message)
	assert.Equal(t, "Schedule one of the next days off on a Sunday: 11/05, 18/05, 25/05.", a.Recommendation)
}

func TestSundayMissingAlert_NoAlert(t *testing.T) {
	tests := []struct {
		name string
		days []int
	}{
		{"Sunday already taken", []int{4, 6}},
		{"requested day is a Sunday", []int{11}},
		{"quota used up", []int{6, 13, 20, 27}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			e := f.addEmployee(t, "Ana")
			var req *model.DayOffRequest
			for _, d := range tt.days {
				req = f.addDayOff(t, e, d)
			}

			alerts, err := NewSundayMissingAlert(f.store, calendarrules.FixedClock{At: now}).Generate(f.ctx, f.subject(e, req))

			require.NoError(t, err)
			assert.Empty(t, alerts)
		})
	}
}

func TestShortIntervalAlert(t *testing.T) {
	tests := []struct {
		name           string
		prior          int
		requested      int
		alert          bool
		recommendation string
	}{
		{"one day gap", 10, 11, true, "Consider moving the day off to 2025-05-15 or later."},
		{"four day gap", 6, 10, true, "Consider moving the day off to 2025-05-11 or later."},
		{"recommended gap", 6, 11, false, ""},
		{"no prior day off", 0, 11, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			e := f.addEmployee(t, "Ana")
			if tt.prior > 0 {
				f.addDayOff(t, e, tt.prior)
			}
			req := f.addDayOff(t, e, tt.requested)

			alerts, err := NewShortIntervalAlert(f.store, calendarrules.DefaultRules()).Generate(f.ctx, f.subject(e, req))
			require.NoError(t, err)

			if !tt.alert {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, model.AlertShortInterval, alerts[0].Type)
			assert.Equal(t, model.SeverityMedium, alerts[0].Severity)
			assert.Equal(t, tt.recommendation, alerts[0].Recommendation)
		})
	}
}

func TestShiftImbalanceAlert(t *testing.T) {
	tests := []struct {
		name  string
		off   int
		alert bool
	}{
		{"coverage at minimum", 2, false},
		{"coverage below minimum", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			var employees []*model.Employee
			for _, name := range []string{"Ana", "Bruno", "Carla", "Davi", "Elis"} {
				employees = append(employees, f.addEmployee(t, name))
			}
			var req *model.DayOffRequest
			for i := 0; i < tt.off; i++ {
				req = f.addDayOff(t, employees[i], 14)
			}

			alerts, err := NewShiftImbalanceAlert(f.store, calendarrules.DefaultRules()).Generate(f.ctx, f.subject(employees[tt.off-1], req))
			require.NoError(t, err)

			if !tt.alert {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, model.SeverityHigh, alerts[0].Severity)
			assert.Equal(t, "Coverage imbalance on 2025-05-14: 3 of 5 employees off. Shift coverage: 40% (recommended minimum: 60%).", alerts[0].Message)
			assert.Contains(t, alerts[0].Recommendation, "Recommended maximum for this day: 2 simultaneous")
		})
	}
}

func TestShiftImbalanceAlert_EmptyShift(t *testing.T) {
	f := newFixture(t)
	ghost := &model.Employee{ID: 42, Name: "Ghost"}
	rosterID := f.roster.ID
	req := &model.DayOffRequest{ID: 7, EmployeeID: 42, RosterID: &rosterID, Date: calendarrules.Date(2025, time.May, 14), Status: model.DayOffPending}

	alerts, err := NewShiftImbalanceAlert(f.store, calendarrules.DefaultRules()).Generate(f.ctx, f.subject(ghost, req))

	require.NoError(t, err)
	assert.Empty(t, alerts)
}
