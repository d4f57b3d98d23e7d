package service

import (
	"fmt"
	"time"
)

// ValidationError a business validation failure carrying a localized,
// user-facing reason. Wraps the underlying cause when there is one.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return e.Err }

// newValidationError builds a ValidationError with a formatted reason.
func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// dayNames Spanish weekday names, Monday-first to match weekday indices.
var dayNames = [7]string{
	"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo",
}

// parseClock parses a wall-clock "15:04" string.
func parseClock(s string) (hour, min int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, newValidationError("hora no válida: %q", s)
	}
	return t.Hour(), t.Minute(), nil
}

// clockMinutes the minutes-from-midnight value of a parsed clock.
func clockMinutes(hour, min int) int { return hour*60 + min }

// withClock anchors a wall-clock time on the given day in loc. Built with
// time.Date so DST transitions resolve the way local clocks do.
func withClock(day time.Time, hour, min int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, loc)
}

// mondayIndex converts time.Weekday (Sunday-first) to the 0=Monday ..
// 6=Sunday index used across the system.
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
