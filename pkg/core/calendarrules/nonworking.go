package calendarrules

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// NonWorkingDays expands recurring closed-day rules (RFC 5545 RRULE strings) into concrete dates
type NonWorkingDays struct {
	options []rrule.ROption
}

// ParseNonWorkingDays parses each rule. Rules without a DTSTART are anchored to the first day
// of whichever month they are expanded for.
func ParseNonWorkingDays(rules []string) (*NonWorkingDays, error) {
	nwd := &NonWorkingDays{}
	for i, rule := range rules {
		opt, err := rrule.StrToROption(rule)
		if err != nil {
			return nil, fmt.Errorf("invalid non-working day rule %d (%q): %w", i, rule, err)
		}
		nwd.options = append(nwd.options, *opt)
	}
	return nwd, nil
}

// InMonth returns the set of non-working dates in the month of monthDate
func (n *NonWorkingDays) InMonth(monthDate time.Time) (map[time.Time]bool, error) {
	days := make(map[time.Time]bool)
	if n == nil {
		return days, nil
	}

	first := FirstOfMonth(monthDate)
	last := LastOfMonth(first)
	for _, opt := range n.options {
		if opt.Dtstart.IsZero() {
			opt.Dtstart = first
		}
		r, err := rrule.NewRRule(opt)
		if err != nil {
			return nil, fmt.Errorf("failed to build non-working day rule: %w", err)
		}
		for _, d := range r.Between(first, last, true) {
			days[DateOnly(d)] = true
		}
	}
	return days, nil
}
