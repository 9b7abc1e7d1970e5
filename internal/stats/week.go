// Package stats derives streak, consistency, and training-volume metrics from
// caller-supplied completion records.
//
// Every function is pure and deterministic: no clocks are read and no I/O is
// performed. Callers fetch historical records, apply any bad-day filtering,
// and pass in "now" where a metric needs it.
package stats

import (
	"fmt"
	"time"
)

// Two week conventions coexist and both must be kept apart:
//
//   - week numbers use the ISO 8601 Thursday anchor, and pair with the
//     event's calendar year to form a key such as "2026-W35",
//   - the displayed start of a week is the Sunday of its calendar week,
//     while weekly streak buckets anchor on Monday.

// WeekNumber returns the ISO 8601-style week number of t. The date is shifted
// to the Thursday of its week before counting weeks from the start of that
// Thursday's year.
func WeekNumber(t time.Time) int {
	day := dateOf(t)

	// Weekday with Monday=1 .. Sunday=7.
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	thursday := day.AddDate(0, 0, 4-weekday)

	const daysPerWeek = 7
	return (thursday.YearDay() + daysPerWeek - 1) / daysPerWeek
}

// WeekKey returns the unique week key of t, e.g. "2026-W35". The year
// component is the event's calendar year, not the Thursday anchor's.
func WeekKey(t time.Time) string {
	return fmt.Sprintf("%d-W%d", t.Year(), WeekNumber(t))
}

// WeekStart returns the Sunday beginning the calendar week of t. This is the
// display convention; it is distinct from the Thursday anchor used for
// numbering and the Monday anchor used for streak buckets.
func WeekStart(t time.Time) time.Time {
	day := dateOf(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// mondayStart returns the Monday beginning the calendar week of t, used to
// bucket weeks for the current-streak walk.
func mondayStart(t time.Time) time.Time {
	day := dateOf(t)
	offset := int(day.Weekday()) - 1
	if offset < 0 {
		offset = 6 // Sunday belongs to the week started the previous Monday.
	}
	return day.AddDate(0, 0, -offset)
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
