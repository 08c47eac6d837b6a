package calendarrules

const (
	// MaxConsecutiveWorkDays is the longest run of work days allowed before a day off is due (6x1 rule)
	MaxConsecutiveWorkDays = 6

	// RecommendedMinInterval is the advisory minimum gap in days between two days off
	RecommendedMinInterval = 5

	// MinShiftCoverage is the advisory minimum share of a shift that must be working on any day
	MinShiftCoverage = 0.60

	// MaxSimultaneousRatio is the share of a shift that may be off on the same day
	MaxSimultaneousRatio = 0.5

	// WarningRatio of MaxSimultaneous at which a day is flagged as near its limit
	WarningRatio = 0.7

	// MaxRequestsPerWeek is the number of days off a single week may hold while another week is still empty
	MaxRequestsPerWeek = 2

	// SundayMandatory is echoed in roster configuration reports
	SundayMandatory = true

	// MaxSimultaneousOffEcho is the fixed limit echoed in roster configuration reports
	MaxSimultaneousOffEcho = 5

	// NoHistoryDays is reported as days since the last day off when none has been recorded
	NoHistoryDays = 999
)

// Rules holds the tunable scheduling thresholds. The zero value is not usable; start from DefaultRules.
type Rules struct {
	MaxConsecutiveWorkDays int
	RecommendedMinInterval int
	MinShiftCoverage       float64
	MaxSimultaneousRatio   float64
	WarningRatio           float64
	// NonWorkingDays are RRULE strings for recurring closed days, display only
	NonWorkingDays []string
}

// DefaultRules returns the standard thresholds
func DefaultRules() Rules {
	return Rules{
		MaxConsecutiveWorkDays: MaxConsecutiveWorkDays,
		RecommendedMinInterval: RecommendedMinInterval,
		MinShiftCoverage:       MinShiftCoverage,
		MaxSimultaneousRatio:   MaxSimultaneousRatio,
		WarningRatio:           WarningRatio,
	}
}

// RestCycle is the number of days from one day off to the latest allowed next one
func (r Rules) RestCycle() int {
	return r.MaxConsecutiveWorkDays + 1
}
