package stats

import (
	"math"
	"sort"
	"time"
)

// passingWeekRatio is the share of the weekly target that still counts as a
// passing week for the current streak.
const passingWeekRatio = 0.75

// maxStreakGapDays is the largest gap between consecutive completions that
// still extends the longest day streak.
const maxStreakGapDays = 3

// CompletionEvent records one completed workout session. Whether bad days are
// included is the caller's decision; the engine never filters them.
type CompletionEvent struct {
	CompletedAt time.Time
	BadDay      bool
}

// StreakReport aggregates streak and consistency metrics over a set of
// completion events.
type StreakReport struct {
	// CurrentStreak counts consecutive weeks, newest first, that met at
	// least 75% of the weekly target.
	CurrentStreak int `json:"current_streak"`
	// LongestStreak counts the longest run of completions whose day gaps
	// never exceeded three calendar days. It measures a different thing
	// than CurrentStreak and neither bounds the other.
	LongestStreak int `json:"longest_streak"`
	// Consistency scores attended weeks against the weekly target, 0-100.
	Consistency int `json:"consistency"`
	// WeeklyCounts maps week keys such as "2026-W35" to completion counts.
	WeeklyCounts map[string]int `json:"weekly_counts"`
	// AvgPerWeek is the average completions per week since program start,
	// rounded to one decimal.
	AvgPerWeek float64 `json:"average_per_week"`
}

// CalculateStreaks computes the streak and consistency metrics for the given
// completion events against a program's weekly target. The caller supplies
// now so that results stay deterministic.
func CalculateStreaks(
	events []CompletionEvent,
	expectedPerWeek int,
	programStart time.Time,
	now time.Time,
) StreakReport {
	report := StreakReport{WeeklyCounts: map[string]int{}}
	if len(events) == 0 {
		return report
	}

	for _, event := range events {
		report.WeeklyCounts[WeekKey(event.CompletedAt)]++
	}

	report.Consistency = consistencyScore(report.WeeklyCounts, expectedPerWeek)
	report.CurrentStreak = currentStreak(events, expectedPerWeek)
	report.LongestStreak = longestStreak(events)
	report.AvgPerWeek = averagePerWeek(len(events), programStart, now)

	return report
}

// consistencyScore averages min(1, count/expected) over weeks that had at
// least one completion. Weeks without activity are absent from the map and
// deliberately contribute no zero term: the score measures how well attended
// weeks went, not elapsed calendar time.
func consistencyScore(weeklyCounts map[string]int, expectedPerWeek int) int {
	if expectedPerWeek == 0 || len(weeklyCounts) == 0 {
		return 0
	}

	var total float64
	for _, count := range weeklyCounts {
		total += math.Min(1, float64(count)/float64(expectedPerWeek))
	}
	average := total / float64(len(weeklyCounts))

	return int(math.Round(average * 100))
}

// currentStreak walks Monday-anchored weekly buckets backwards from the most
// recent one. A week passes when it holds at least ceil(expected×0.75)
// completions. Weeks with zero completions never enter the bucket map, so a
// calendar gap breaks the walk the moment the expected bucket is missing.
func currentStreak(events []CompletionEvent, expectedPerWeek int) int {
	if expectedPerWeek == 0 {
		return 0
	}

	buckets := make(map[string]int)
	var latest time.Time
	for _, event := range events {
		monday := mondayStart(event.CompletedAt)
		buckets[monday.Format(time.DateOnly)]++
		if monday.After(latest) {
			latest = monday
		}
	}

	threshold := int(math.Ceil(float64(expectedPerWeek) * passingWeekRatio))
	streak := 0
	for week := latest; ; week = week.AddDate(0, 0, -7) {
		count, ok := buckets[week.Format(time.DateOnly)]
		if !ok || count < threshold {
			break
		}
		streak++
	}
	return streak
}

// longestStreak operates on raw completion dates, independent of weekly
// targets: sort ascending and extend the running streak while consecutive
// completions are at most three calendar days apart.
func longestStreak(events []CompletionEvent) int {
	if len(events) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(events))
	for _, event := range events {
		dates = append(dates, dateOf(event.CompletedAt))
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if daysBetween(dates[i-1], dates[i]) <= maxStreakGapDays {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// averagePerWeek spreads the completion count over the weeks elapsed since
// program start, flooring the denominator at one week.
func averagePerWeek(count int, programStart, now time.Time) float64 {
	weeksElapsed := now.Sub(programStart).Hours() / (24 * 7)
	weeksElapsed = math.Max(1, weeksElapsed)

	return math.Round(float64(count)/weeksElapsed*10) / 10
}

// daysBetween counts calendar days from a to b, both truncated to midnight.
// Rounding absorbs daylight saving time shifts.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
