package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverity_MoreSevereThan(t *testing.T) {
	ordered := []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}

	for i, s := range ordered {
		for j, other := range ordered {
			assert.Equal(t, i < j, s.MoreSevereThan(other), "%s before %s", s, other)
		}
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityCritical, "CRITICAL"},
		{SeverityHigh, "HIGH"},
		{SeverityMedium, "MEDIUM"},
		{SeverityLow, "LOW"},
		{SeverityInfo, "INFO"},
		{Severity(9), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.severity.String())
		})
	}
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo} {
		got, ok := ParseSeverity(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}

	_, ok := ParseSeverity("URGENT")
	assert.False(t, ok)
}

func TestAlertType_DefaultSeverity(t *testing.T) {
	tests := []struct {
		alertType AlertType
		want      Severity
	}{
		{AlertSundayMissing, SeverityHigh},
		{AlertShortInterval, SeverityMedium},
		{AlertShiftImbalance, SeverityHigh},
		{AlertType("UNKNOWN"), SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.alertType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.alertType.DefaultSeverity())
		})
	}
}

func TestSeverityColors_CoverEverySeverity(t *testing.T) {
	for _, s := range []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo} {
		assert.NotEmpty(t, SeverityColors[s], s.String())
	}
}

func TestNewAlert(t *testing.T) {
	req := &DayOffRequest{ID: 7, EmployeeID: 3}

	a := NewAlert(req, 2, AlertShortInterval, "msg", "rec")

	assert.Equal(t, int64(2), a.RosterID)
	assert.Equal(t, int64(3), a.EmployeeID)
	if assert.NotNil(t, a.DayOffID) {
		assert.Equal(t, int64(7), *a.DayOffID)
	}
	assert.Equal(t, SeverityMedium, a.Severity)

	draft := NewAlert(&DayOffRequest{EmployeeID: 3}, 2, AlertSundayMissing, "msg", "")
	assert.Nil(t, draft.DayOffID)
	assert.Equal(t, SeverityHigh, draft.Severity)
}
