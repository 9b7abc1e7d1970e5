package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akorpela/liftlog/internal/stats"
)

func completeOn(t *testing.T, server *httptest.Server, token, completedAt string, performed []map[string]any) {
	t.Helper()
	resp := doRequest(t, server, token, http.MethodPost, "/api/workouts/complete", map[string]any{
		"completed_at": completedAt,
		"performed":    performed,
	})
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("complete workout: status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
}

func Test_streaks_reportsWeeklyCounts(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server)
	setupProgram(t, server, token)
	squatID := findExerciseID(t, server, token, "Squat")

	performed := []map[string]any{
		{"exercise_id": squatID, "sets": 3, "reps": 5, "weight_kg": 100.0, "rating": 4},
	}
	// Three workouts during the first week of January 2024.
	completeOn(t, server, token, "2024-01-01T10:00:00Z", performed)
	completeOn(t, server, token, "2024-01-03T10:00:00Z", performed)
	completeOn(t, server, token, "2024-01-05T10:00:00Z", performed)

	resp := doRequest(t, server, token, http.MethodGet, "/api/stats/streaks", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("streaks: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var report stats.StreakReport
	decodeJSON(t, resp, &report)

	if got := report.WeeklyCounts["2024-W1"]; got != 3 {
		t.Errorf("WeeklyCounts[2024-W1] = %d, want 3", got)
	}
	if report.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", report.LongestStreak)
	}
	// The streak walks back from the latest week present in the data, not
	// from the clock, and that week met the target.
	if report.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", report.CurrentStreak)
	}
}

func Test_volume_overCountsSharedMuscleGroups(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server)
	setupProgram(t, server, token)
	squatID := findExerciseID(t, server, token, "Squat")

	completeOn(t, server, token, "2024-01-01T10:00:00Z", []map[string]any{
		{"exercise_id": squatID, "sets": 3, "reps": 5, "weight_kg": 100.0, "rating": 4},
	})

	resp := doRequest(t, server, token, http.MethodGet, "/api/stats/volume", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("volume: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var report stats.VolumeReport
	decodeJSON(t, resp, &report)

	if report.Total != 1500 {
		t.Errorf("Total = %v, want 1500", report.Total)
	}
	// The squat targets both quads and glutes, and each gets the full volume.
	var groupSum float64
	for _, group := range report.ByMuscleGroup {
		if group.Volume != 1500 {
			t.Errorf("ByMuscleGroup[%s] = %v, want 1500", group.MuscleGroup, group.Volume)
		}
		groupSum += group.Volume
	}
	if groupSum != 3000 {
		t.Errorf("muscle group sum = %v, want 3000", groupSum)
	}
}

func Test_volume_sinceFiltersOldWorkouts(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server)
	setupProgram(t, server, token)
	squatID := findExerciseID(t, server, token, "Squat")

	performed := []map[string]any{
		{"exercise_id": squatID, "sets": 3, "reps": 5, "weight_kg": 100.0, "rating": 4},
	}
	completeOn(t, server, token, "2024-01-01T10:00:00Z", performed)
	completeOn(t, server, token, "2024-02-01T10:00:00Z", performed)

	resp := doRequest(t, server, token, http.MethodGet, "/api/stats/volume?since=2024-01-15", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("volume: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var report stats.VolumeReport
	decodeJSON(t, resp, &report)

	if report.Total != 1500 {
		t.Errorf("Total = %v, want 1500 after filtering out the January workout", report.Total)
	}
}
