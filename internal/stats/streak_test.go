package stats

import (
	"testing"
	"time"
)

// completionsOn builds completion events at noon on each given day.
func completionsOn(days ...time.Time) []CompletionEvent {
	events := make([]CompletionEvent, 0, len(days))
	for _, day := range days {
		events = append(events, CompletionEvent{
			CompletedAt: day.Add(12 * time.Hour),
			BadDay:      false,
		})
	}
	return events
}

// monWedFri returns Monday/Wednesday/Friday completions for the given number
// of weeks, starting from a Monday.
func monWedFri(firstMonday time.Time, weeks int) []CompletionEvent {
	var days []time.Time
	for week := range weeks {
		monday := firstMonday.AddDate(0, 0, 7*week)
		days = append(days, monday, monday.AddDate(0, 0, 2), monday.AddDate(0, 0, 4))
	}
	return completionsOn(days...)
}

func TestCalculateStreaksEmpty(t *testing.T) {
	report := CalculateStreaks(nil, 3, date(2024, time.January, 1), date(2024, time.March, 1))

	if report.CurrentStreak != 0 || report.LongestStreak != 0 || report.Consistency != 0 || report.AvgPerWeek != 0 {
		t.Errorf("empty events: want all zero metrics, got %+v", report)
	}
	if len(report.WeeklyCounts) != 0 {
		t.Errorf("empty events: want empty WeeklyCounts, got %v", report.WeeklyCounts)
	}
}

func TestCalculateStreaksZeroTarget(t *testing.T) {
	events := monWedFri(date(2024, time.January, 1), 2)

	report := CalculateStreaks(events, 0, date(2024, time.January, 1), date(2024, time.January, 15))

	if report.Consistency != 0 {
		t.Errorf("Consistency = %d, want 0 with a zero weekly target", report.Consistency)
	}
	if report.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 with a zero weekly target", report.CurrentStreak)
	}
	// Longest streak is independent of the weekly target.
	if report.LongestStreak != 6 {
		t.Errorf("LongestStreak = %d, want 6", report.LongestStreak)
	}
}

func TestCurrentStreakFourFullWeeks(t *testing.T) {
	// Mon/Wed/Fri for four consecutive weeks against a target of three:
	// every week holds 3 ≥ ceil(3×0.75) = 3 completions.
	events := monWedFri(date(2024, time.January, 1), 4)

	report := CalculateStreaks(events, 3, date(2024, time.January, 1), date(2024, time.January, 29))

	if report.CurrentStreak != 4 {
		t.Errorf("CurrentStreak = %d, want 4", report.CurrentStreak)
	}
	if report.Consistency != 100 {
		t.Errorf("Consistency = %d, want 100", report.Consistency)
	}
	if report.AvgPerWeek != 3.0 {
		t.Errorf("AvgPerWeek = %v, want 3.0", report.AvgPerWeek)
	}
}

func TestCurrentStreakBreaksOnFailingWeek(t *testing.T) {
	// Two full weeks, then a week with a single completion, then another
	// full week. The walk stops at the failing week.
	firstMonday := date(2024, time.January, 1)
	events := monWedFri(firstMonday, 2)
	events = append(events, completionsOn(firstMonday.AddDate(0, 0, 14))...)
	events = append(events, monWedFri(firstMonday.AddDate(0, 0, 21), 1)...)

	report := CalculateStreaks(events, 3, firstMonday, firstMonday.AddDate(0, 0, 28))

	if report.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", report.CurrentStreak)
	}
}

func TestCurrentStreakBreaksOnMissingWeek(t *testing.T) {
	// A full week, a completely empty week, then two full weeks. The empty
	// week never enters the bucket map, so the walk from the most recent
	// week stops when it reaches the gap.
	firstMonday := date(2024, time.January, 1)
	events := monWedFri(firstMonday, 1)
	events = append(events, monWedFri(firstMonday.AddDate(0, 0, 14), 2)...)

	report := CalculateStreaks(events, 3, firstMonday, firstMonday.AddDate(0, 0, 28))

	if report.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", report.CurrentStreak)
	}
}

func TestLongestStreakIsolatedCompletions(t *testing.T) {
	// Nine days apart: both completions stay isolated runs of one.
	events := completionsOn(date(2024, time.January, 1), date(2024, time.January, 10))

	report := CalculateStreaks(events, 3, date(2024, time.January, 1), date(2024, time.January, 15))

	if report.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", report.LongestStreak)
	}
}

func TestLongestStreakTolerantGap(t *testing.T) {
	// Gaps of exactly three days extend the run; the four-day gap resets it.
	events := completionsOn(
		date(2024, time.January, 1),
		date(2024, time.January, 4),
		date(2024, time.January, 7),
		date(2024, time.January, 11),
		date(2024, time.January, 12),
	)

	report := CalculateStreaks(events, 3, date(2024, time.January, 1), date(2024, time.January, 15))

	if report.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", report.LongestStreak)
	}
}

func TestStreaksMeasureDifferentThings(t *testing.T) {
	// Daily completions for five days in a single week: the day-gap streak
	// is long while the weekly-threshold streak is just one week. Neither
	// metric bounds the other.
	events := completionsOn(
		date(2024, time.January, 1),
		date(2024, time.January, 2),
		date(2024, time.January, 3),
		date(2024, time.January, 4),
		date(2024, time.January, 5),
	)

	report := CalculateStreaks(events, 3, date(2024, time.January, 1), date(2024, time.January, 8))

	if report.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", report.CurrentStreak)
	}
	if report.LongestStreak != 5 {
		t.Errorf("LongestStreak = %d, want 5", report.LongestStreak)
	}
	if distinctWeeks := len(report.WeeklyCounts); report.CurrentStreak > distinctWeeks {
		t.Errorf("CurrentStreak = %d exceeds distinct weeks %d", report.CurrentStreak, distinctWeeks)
	}
}

func TestConsistencyIgnoresEmptyWeeks(t *testing.T) {
	// One perfect week, three empty weeks, one week at a third of the
	// target. Only the two attended weeks are averaged: (1 + 1/3) / 2.
	firstMonday := date(2024, time.January, 1)
	events := monWedFri(firstMonday, 1)
	events = append(events, completionsOn(firstMonday.AddDate(0, 0, 28))...)

	report := CalculateStreaks(events, 3, firstMonday, firstMonday.AddDate(0, 0, 35))

	if report.Consistency != 67 {
		t.Errorf("Consistency = %d, want 67", report.Consistency)
	}
}

func TestConsistencyCapsOvershootingWeeks(t *testing.T) {
	// Six completions against a target of three still scores a week at 1.
	firstMonday := date(2024, time.January, 1)
	var days []time.Time
	for i := range 6 {
		days = append(days, firstMonday.AddDate(0, 0, i))
	}
	events := completionsOn(days...)

	report := CalculateStreaks(events, 3, firstMonday, firstMonday.AddDate(0, 0, 7))

	if report.Consistency != 100 {
		t.Errorf("Consistency = %d, want 100", report.Consistency)
	}
}

func TestAvgPerWeekFloorsElapsedWeeks(t *testing.T) {
	// Two completions on the program's first day: the denominator floors at
	// one week instead of exploding.
	start := date(2024, time.January, 1)
	events := completionsOn(start, start)

	report := CalculateStreaks(events, 3, start, start.Add(24*time.Hour))

	if report.AvgPerWeek != 2.0 {
		t.Errorf("AvgPerWeek = %v, want 2.0", report.AvgPerWeek)
	}
}

func TestAvgPerWeekRoundsToOneDecimal(t *testing.T) {
	// Five completions over three weeks: 5/3 = 1.666... rounds to 1.7.
	start := date(2024, time.January, 1)
	var days []time.Time
	for i := range 5 {
		days = append(days, start.AddDate(0, 0, i*4))
	}
	events := completionsOn(days...)

	report := CalculateStreaks(events, 3, start, start.AddDate(0, 0, 21))

	if report.AvgPerWeek != 1.7 {
		t.Errorf("AvgPerWeek = %v, want 1.7", report.AvgPerWeek)
	}
}

func TestWeeklyCountsKeyedByWeek(t *testing.T) {
	events := monWedFri(date(2024, time.January, 1), 1)

	report := CalculateStreaks(events, 3, date(2024, time.January, 1), date(2024, time.January, 8))

	if got := report.WeeklyCounts["2024-W1"]; got != 3 {
		t.Errorf(`WeeklyCounts["2024-W1"] = %d, want 3`, got)
	}
}

func TestLongestStreakNoEvents(t *testing.T) {
	// Guard for direct callers: an empty run is zero, not one.
	if got := longestStreak(nil); got != 0 {
		t.Errorf("longestStreak(nil) = %d, want 0", got)
	}
}
