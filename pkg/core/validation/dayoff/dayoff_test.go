package dayoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/pkg/core/calendarrules"
	"github.com/jakechorley/leave-roster/pkg/core/model"
	"github.com/jakechorley/leave-roster/pkg/core/validation"
	"github.com/jakechorley/leave-roster/pkg/db"
)

func may(day int) time.Time {
	return calendarrules.Date(2025, time.May, day)
}

type fixture struct {
	ctx      context.Context
	store    *db.MemoryDB
	employee *model.Employee
	roster   *model.Roster
	chain    *Chain
}

// newFixture creates a NIGHT roster for May 2025 with one employee
func newFixture(t *testing.T, quota int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := db.NewMemoryDB()

	dept := &model.Department{Name: "ICU", NormalizedName: "icu", Active: true}
	require.NoError(t, store.InsertDepartment(ctx, dept))

	employee := &model.Employee{Name: "Ana Souza", Shift: model.ShiftNight, DepartmentID: dept.ID, Active: true}
	require.NoError(t, store.InsertEmployee(ctx, employee))

	roster := &model.Roster{Month: 5, Year: 2025, AllowedDaysOff: quota, Shift: model.ShiftNight, DepartmentID: dept.ID, Status: model.RosterNew}
	require.NoError(t, store.InsertRoster(ctx, roster))

	return &fixture{
		ctx:      ctx,
		store:    store,
		employee: employee,
		roster:   roster,
		chain:    NewChain(store, calendarrules.DefaultRules(), zap.NewNop()),
	}
}

func (f *fixture) addDayOff(t *testing.T, date time.Time, status model.DayOffStatus) *model.DayOffRequest {
	t.Helper()
	rosterID := f.roster.ID
	req := &model.DayOffRequest{EmployeeID: f.employee.ID, RosterID: &rosterID, Date: date, Status: status}
	require.NoError(t, f.store.PersistDayOffRequest(f.ctx, req))
	return req
}

func (f *fixture) addHistory(t *testing.T, date time.Time) {
	t.Helper()
	req := &model.DayOffRequest{EmployeeID: f.employee.ID, Date: date, Status: model.DayOffApproved}
	require.NoError(t, f.store.PersistDayOffRequest(f.ctx, req))
}

func (f *fixture) request(date time.Time) *model.DayOffRequest {
	rosterID := f.roster.ID
	return &model.DayOffRequest{EmployeeID: f.employee.ID, RosterID: &rosterID, Date: date, Status: model.DayOffPending}
}

func (f *fixture) validate(t *testing.T, date time.Time) validation.Result {
	t.Helper()
	result, err := f.chain.Validate(f.ctx, f.request(date))
	require.NoError(t, err)
	return result
}

func (f *fixture) candidate(date time.Time) *Candidate {
	return &Candidate{Request: f.request(date), Employee: f.employee, Roster: f.roster}
}

func TestChain_Order(t *testing.T) {
	f := newFixture(t, 4)

	assert.Equal(t, []string{
		"DuplicateCheck",
		"QuotaCheck",
		"ConsecutiveWorkDaysCheck",
		"MandatorySundayCheck",
		"WeeklyDistributionCheck",
	}, f.chain.Names())
}

func TestChain_FirstRequestAccepted(t *testing.T) {
	f := newFixture(t, 4)

	result := f.validate(t, may(4))

	assert.True(t, result.Valid, result.Message)
}

func TestDuplicateCheck_RejectsSameDate(t *testing.T) {
	f := newFixture(t, 4)
	f.addDayOff(t, may(12), model.DayOffPending)

	result := f.validate(t, may(12))

	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "already has a day off on 2025-05-12")
}

func TestDuplicateCheck_RejectsRegardlessOfOrder(t *testing.T) {
	f := newFixture(t, 5)
	f.addDayOff(t, may(20), model.DayOffApproved)
	f.addDayOff(t, may(10), model.DayOffPending)

	for _, date := range []time.Time{may(10), may(20)} {
		result := f.validate(t, date)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Message, "already has a day off")
	}
}

func TestDuplicateCheck_IgnoresDeniedRequests(t *testing.T) {
	f := newFixture(t, 4)
	f.addDayOff(t, may(10), model.DayOffDenied)

	result, err := NewDuplicateCheck(f.store).Validate(f.ctx, f.candidate(may(10)))

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestDuplicateCheck_ExcludesRequestBeingUpdated(t *testing.T) {
	f := newFixture(t, 4)
	existing := f.addDayOff(t, may(10), model.DayOffPending)

	result, err := f.chain.Validate(f.ctx, existing)

	require.NoError(t, err)
	assert.True(t, result.Valid, result.Message)
}

func TestQuotaCheck_RejectsWhenQuotaReached(t *testing.T) {
	f := newFixture(t, 2)
	f.addDayOff(t, may(4), model.DayOffApproved)
	f.addDayOff(t, may(10), model.DayOffPending)

	result := f.validate(t, may(12))

	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "limit of 2 days off")
	assert.Contains(t, result.Message, "05/2025")
}

func TestQuotaCheck_DeniedDoNotCount(t *testing.T) {
	f := newFixture(t, 1)
	f.addDayOff(t, may(4), model.DayOffDenied)

	result, err := NewQuotaCheck(f.store).Validate(f.ctx, f.candidate(may(11)))

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestConsecutiveWorkDays_Boundary(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		valid bool
	}{
		{"D+6 is accepted (5 days worked)", may(10), true},
		{"D+7 is rejected (6 days worked)", may(11), false},
		{"D+8 is rejected (7 days worked)", may(12), false},
		{"D+1 is accepted (0 days worked)", may(5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 5)
			f.addDayOff(t, may(4), model.DayOffApproved)

			result, err := NewConsecutiveWorkDaysCheck(f.store, calendarrules.DefaultRules()).Validate(f.ctx, f.candidate(tt.date))

			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, result.Message)
			if !tt.valid {
				assert.Contains(t, result.Message, "limit of 6 consecutive work days")
			}
		})
	}
}

func TestConsecutiveWorkDays_ThroughChain(t *testing.T) {
	f := newFixture(t, 5)
	f.addDayOff(t, may(4), model.DayOffApproved)

	assert.True(t, f.validate(t, may(10)).Valid)

	result := f.validate(t, may(11))
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "Last day off: 2025-05-04, requested day off: 2025-05-11")
}

func TestConsecutiveWorkDays_UsesHistoryAcrossRosters(t *testing.T) {
	f := newFixture(t, 5)
	f.addHistory(t, calendarrules.Date(2025, time.April, 28))

	result := f.validate(t, may(5))

	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "2025-04-28")

	assert.True(t, f.validate(t, may(4)).Valid)
}

func TestConsecutiveWorkDays_IgnoresLaterDaysOff(t *testing.T) {
	f := newFixture(t, 5)
	f.addDayOff(t, may(20), model.DayOffPending)

	result, err := NewConsecutiveWorkDaysCheck(f.store, calendarrules.DefaultRules()).Validate(f.ctx, f.candidate(may(2)))

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestConsecutiveWorkDays_CustomLimit(t *testing.T) {
	f := newFixture(t, 5)
	f.addDayOff(t, may(4), model.DayOffApproved)
	rules := calendarrules.DefaultRules()
	rules.MaxConsecutiveWorkDays = 4

	result, err := NewConsecutiveWorkDaysCheck(f.store, rules).Validate(f.ctx, f.candidate(may(9)))

	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestMandatorySunday_RejectsLastSlotWithoutSunday(t *testing.T) {
	f := newFixture(t, 3)
	f.addDayOff(t, may(5), model.DayOffApproved)
	f.addDayOff(t, may(10), model.DayOffPending)

	result := f.validate(t, may(15))

	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "no Sunday has been taken yet")
	assert.Contains(t, result.Message, "2025-05-04, 2025-05-11, 2025-05-18, 2025-05-25")
}

func TestMandatorySunday_PassesWhenSundayTaken(t *testing.T) {
	f := newFixture(t, 3)
	f.addDayOff(t, may(4), model.DayOffApproved)
	f.addDayOff(t, may(10), model.DayOffPending)

	result, err := NewMandatorySundayCheck(f.store).Validate(f.ctx, f.candidate(may(15)))

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestMandatorySunday_PassesWhenCandidateIsSunday(t *testing.T) {
	f := newFixture(t, 3)
	f.addDayOff(t, may(5), model.DayOffApproved)
	f.addDayOff(t, may(10), model.DayOffPending)

	result, err := NewMandatorySundayCheck(f.store).Validate(f.ctx, f.candidate(may(11)))

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestMandatorySunday_PassesWhileSlotsRemain(t *testing.T) {
	f := newFixture(t, 4)
	f.addDayOff(t, may(5), model.DayOffApproved)

	result, err := NewMandatorySundayCheck(f.store).Validate(f.ctx, f.candidate(may(8)))

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestWeeklyDistribution_LastSlotMustCoverEmptyWeek(t *testing.T) {
	// Quota 5, one day off in each of weeks 1-4 of May 2025 (a 5-week month)
	f := newFixture(t, 5)
	for _, d := range []int{4, 10, 16, 22} {
		f.addDayOff(t, may(d), model.DayOffPending)
	}

	rejected := f.validate(t, may(3))
	assert.False(t, rejected.Valid)
	assert.Contains(t, rejected.Message, "5 (26/05 to 31/05)")

	accepted := f.validate(t, may(28))
	assert.True(t, accepted.Valid, accepted.Message)
}

func TestWeeklyDistribution_RejectsConcentration(t *testing.T) {
	f := newFixture(t, 5)
	f.addDayOff(t, may(5), model.DayOffPending)
	f.addDayOff(t, may(6), model.DayOffPending)

	result := f.validate(t, may(7))

	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "Week 2 already has 3 day(s) off (05/05, 06/05, 07/05)")
}

func TestWeeklyDistribution_TwoInOneWeekAllowed(t *testing.T) {
	f := newFixture(t, 5)
	f.addDayOff(t, may(5), model.DayOffPending)

	result, err := NewWeeklyDistributionCheck(f.store).Validate(f.ctx, f.candidate(may(6)))

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestWeeklyDistribution_ConcentrationAllowedOnceEveryWeekCovered(t *testing.T) {
	f := newFixture(t, 8)
	for _, d := range []int{4, 5, 6, 12, 19, 26} {
		f.addDayOff(t, may(d), model.DayOffPending)
	}

	result, err := NewWeeklyDistributionCheck(f.store).Validate(f.ctx, f.candidate(may(7)))

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestWeeklyDistribution_IgnoresDatesOutsideRosterMonth(t *testing.T) {
	f := newFixture(t, 1)

	result, err := NewWeeklyDistributionCheck(f.store).Validate(f.ctx, f.candidate(calendarrules.Date(2025, time.June, 2)))

	require.NoError(t, err)
	assert.False(t, result.Valid, "quota exhausted with every week of May still empty")
	assert.Contains(t, result.Message, "1 (01/05 to 04/05)")
}

func TestChain_RequiresRoster(t *testing.T) {
	f := newFixture(t, 4)
	req := f.request(may(10))
	req.RosterID = nil

	result, err := f.chain.Validate(f.ctx, req)

	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestChain_MissingRosterIsNotFound(t *testing.T) {
	f := newFixture(t, 4)
	missing := int64(999)
	req := f.request(may(10))
	req.RosterID = &missing

	_, err := f.chain.Validate(f.ctx, req)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

// failingStore simulates an unreachable database for the last-day-off lookup
type failingStore struct {
	*db.MemoryDB
	err error
}

func (s *failingStore) FindLastDayOffBefore(ctx context.Context, employeeID int64, date time.Time, excludeID int64) (*time.Time, error) {
	return nil, s.err
}

func TestChain_CollaboratorFailureIsFatal(t *testing.T) {
	f := newFixture(t, 4)
	storeErr := errors.New("connection refused")
	chain := NewChain(&failingStore{MemoryDB: f.store, err: storeErr}, calendarrules.DefaultRules(), zap.NewNop())

	result, err := chain.Validate(f.ctx, f.request(may(10)))

	require.Error(t, err)
	assert.False(t, result.Valid)

	var fatal *validation.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, "ConsecutiveWorkDaysCheck", fatal.Validator)
	assert.ErrorIs(t, err, storeErr)
}
