package service

import (
	"errors"
	"time"
)

// ErrInvalidDayOfWeek is returned when a caller-specified day is outside 0..6.
var ErrInvalidDayOfWeek = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")

// dayStart truncates t to midnight in its own location.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekBounds resolves the plan week containing ref: weekStart is the most
// recent Sunday at 00:00:00.000 (possibly ref's own day), weekEnd the
// following Saturday at 23:59:59.999. For any ref, weekStart <= ref <= weekEnd.
func weekBounds(ref time.Time) (weekStart, weekEnd time.Time) {
	d := dayStart(ref)
	weekStart = d.AddDate(0, 0, -int(d.Weekday()))
	weekEnd = weekStart.AddDate(0, 0, 7).Add(-time.Millisecond)
	return weekStart, weekEnd
}

// targetDays resolves which days of the plan week an assignment applies to:
// the whole week, a validated caller-specified day, or the reference date's
// own weekday.
func targetDays(applyToWeek bool, dayOfWeek *int, ref time.Time) ([]int, error) {
	if applyToWeek {
		return []int{0, 1, 2, 3, 4, 5, 6}, nil
	}
	if dayOfWeek != nil {
		if *dayOfWeek < 0 || *dayOfWeek > 6 {
			return nil, ErrInvalidDayOfWeek
		}
		return []int{*dayOfWeek}, nil
	}
	return []int{int(ref.Weekday())}, nil
}
