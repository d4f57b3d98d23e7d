// Package recurrence contains the pure scheduling core: recurrence rules,
// their expansion into concrete dates, and the text serialization used to
// persist day sets. Everything here is deterministic and free of I/O.
package recurrence

import (
	"errors"
	"fmt"
	"time"
)

// Frequency identifies the unit a rule repeats over.
type Frequency string

const (
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

// MaxCount is the persistence-layer bound on occurrences per series.
const MaxCount = 52

// ── Validation errors ──

var (
	ErrNilPattern    = errors.New("recurrence: rule has no pattern")
	ErrBadInterval   = errors.New("recurrence: interval must be positive")
	ErrBadCount      = fmt.Errorf("recurrence: count must be between 1 and %d", MaxCount)
	ErrEmptyDaySet   = errors.New("recurrence: day set is empty")
	ErrDayOutOfRange = errors.New("recurrence: day value out of range")
)

// Pattern is the frequency-specific half of a rule. Exactly two
// implementations exist, Weekly and Monthly, so a rule can never carry a day
// set that its frequency ignores.
type Pattern interface {
	Frequency() Frequency
	validate() error
}

// Weekly repeats every Interval weeks on the given weekdays
// (0=Monday .. 6=Sunday).
type Weekly struct {
	Interval int
	Weekdays []int
}

// Frequency implements Pattern.
func (Weekly) Frequency() Frequency { return FrequencyWeekly }

func (w Weekly) validate() error {
	if w.Interval < 1 {
		return ErrBadInterval
	}
	if len(w.Weekdays) == 0 {
		return ErrEmptyDaySet
	}
	for _, d := range w.Weekdays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekday %d", ErrDayOutOfRange, d)
		}
	}
	return nil
}

// Monthly repeats every Interval months on the given days of the month
// (1..31). Days a month does not have are skipped, never rolled over.
type Monthly struct {
	Interval  int
	MonthDays []int
}

// Frequency implements Pattern.
func (Monthly) Frequency() Frequency { return FrequencyMonthly }

func (m Monthly) validate() error {
	if m.Interval < 1 {
		return ErrBadInterval
	}
	if len(m.MonthDays) == 0 {
		return ErrEmptyDaySet
	}
	for _, d := range m.MonthDays {
		if d < 1 || d > 31 {
			return fmt.Errorf("%w: month day %d", ErrDayOutOfRange, d)
		}
	}
	return nil
}

// Rule is a complete recurrence description: first date, total occurrence
// count and the frequency-specific pattern. Only the date portion of Start
// is meaningful.
type Rule struct {
	Start   time.Time
	Count   int
	Pattern Pattern
}

// Validate rejects malformed rules before any expansion is attempted.
// A malformed rule is a caller error and is never silently defaulted.
func (r Rule) Validate() error {
	if r.Pattern == nil {
		return ErrNilPattern
	}
	if r.Count < 1 || r.Count > MaxCount {
		return ErrBadCount
	}
	return r.Pattern.validate()
}
