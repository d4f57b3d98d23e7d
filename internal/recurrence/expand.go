package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// rruleWeekdays maps the 0=Monday .. 6=Sunday index onto RFC 5545 weekdays.
var rruleWeekdays = [7]rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

// Expand converts a rule into its concrete occurrence dates, sorted
// ascending, each at midnight in loc. The result always holds exactly
// rule.Count dates, the first of which is the earliest match on or after
// rule.Start. Expansion is pure: identical input yields identical output.
//
// Weekly rules with Interval > 1 anchor the week cadence on rule.Start's
// week (weeks begin on Monday). Monthly rules skip day numbers a month does
// not have instead of rolling into the next month, so a rule on day 31 emits
// nothing for February.
func Expand(rule Rule, loc *time.Location) ([]time.Time, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	start := time.Date(rule.Start.Year(), rule.Start.Month(), rule.Start.Day(), 0, 0, 0, 0, loc)

	opt := rrule.ROption{
		Dtstart: start,
		Count:   rule.Count,
		Wkst:    rrule.MO,
	}

	switch p := rule.Pattern.(type) {
	case Weekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = p.Interval
		opt.Byweekday = make([]rrule.Weekday, 0, len(p.Weekdays))
		for _, d := range p.Weekdays {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
		}
	case Monthly:
		opt.Freq = rrule.MONTHLY
		opt.Interval = p.Interval
		opt.Bymonthday = append([]int(nil), p.MonthDays...)
	default:
		return nil, fmt.Errorf("%w: %T", ErrNilPattern, rule.Pattern)
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("recurrence: build rule: %w", err)
	}

	raw := r.All()
	dates := make([]time.Time, 0, len(raw))
	for _, t := range raw {
		t = t.In(loc)
		dates = append(dates, time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc))
	}
	return dates, nil
}
