package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ── Serialization errors ──

var (
	ErrUnknownWeekdayCode = errors.New("recurrence: unknown weekday code")
	ErrBadMonthDayToken   = errors.New("recurrence: invalid month day token")
)

// weekdayCodes holds the two-letter codes in Monday-first order, so the slice
// index is the weekday index used everywhere else in this package.
var weekdayCodes = [7]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// ParseByDay converts a comma-separated list of two-letter weekday codes
// ("MO,WE") into a sorted, deduplicated set of weekday indices. Parsing is
// case-insensitive and tolerates whitespace around separators. An empty
// string parses to an empty set; an unrecognized code is an error, never
// silently skipped.
func ParseByDay(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return []int{}, nil
	}
	seen := make(map[int]bool)
	for _, tok := range strings.Split(s, ",") {
		code := strings.ToUpper(strings.TrimSpace(tok))
		idx := -1
		for i, c := range weekdayCodes {
			if c == code {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWeekdayCode, tok)
		}
		seen[idx] = true
	}
	return sortedKeys(seen), nil
}

// FormatByDay renders a weekday-index set as comma-separated codes in
// Monday-first order, deduplicated, regardless of input order. Indices
// outside 0..6 are dropped. An empty set formats to "".
func FormatByDay(days []int) string {
	seen := make(map[int]bool)
	for _, d := range days {
		if d >= 0 && d <= 6 {
			seen[d] = true
		}
	}
	codes := make([]string, 0, len(seen))
	for _, d := range sortedKeys(seen) {
		codes = append(codes, weekdayCodes[d])
	}
	return strings.Join(codes, ",")
}

// ParseByMonthDay converts a comma-separated list of day numbers ("15,30")
// into a sorted, deduplicated set of days 1..31.
func ParseByMonthDay(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return []int{}, nil
	}
	seen := make(map[int]bool)
	for _, tok := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadMonthDayToken, tok)
		}
		if n < 1 || n > 31 {
			return nil, fmt.Errorf("%w: month day %d", ErrDayOutOfRange, n)
		}
		seen[n] = true
	}
	return sortedKeys(seen), nil
}

// FormatByMonthDay renders a month-day set as an ascending, deduplicated
// numeric list. Values outside 1..31 are dropped. An empty set formats to "".
func FormatByMonthDay(days []int) string {
	seen := make(map[int]bool)
	for _, d := range days {
		if d >= 1 && d <= 31 {
			seen[d] = true
		}
	}
	parts := make([]string, 0, len(seen))
	for _, d := range sortedKeys(seen) {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
