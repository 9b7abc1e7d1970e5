package progression_test

import (
	"testing"

	"github.com/akorpela/liftlog/internal/progression"
)

func adaptive() progression.IncrementSettings {
	return progression.IncrementSettings{Adaptive: true}
}

func fixed(kg float64) progression.IncrementSettings {
	return progression.IncrementSettings{
		BarbellKg:  kg,
		DumbbellKg: kg,
		CableKg:    kg,
		MachineKg:  kg,
	}
}

func TestCalculateLoadOnly(t *testing.T) {
	testCases := []struct {
		name       string
		sample     progression.PerformanceSample
		goal       progression.Goal
		settings   progression.IncrementSettings
		wantWeight float64
		wantReps   int
		wantDeload bool
	}{
		{
			name: "barbell squat moderate rating with adaptive increments",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 5, WeightKg: 100, Rating: 3,
				Equipment: progression.EquipmentBarbell, IsCompound: true,
				ExerciseName: "Squat",
			},
			goal:       progression.GoalStrength,
			settings:   adaptive(),
			wantWeight: 102.5,
			wantReps:   5,
		},
		{
			name: "very easy rating jumps four increments",
			sample: progression.PerformanceSample{
				Sets: 5, Reps: 3, WeightKg: 80, Rating: 1,
				Equipment: progression.EquipmentBarbell, IsCompound: true,
				ExerciseName: "Deadlift",
			},
			goal:       progression.GoalStrength,
			settings:   fixed(2.5),
			wantWeight: 90,
			wantReps:   3,
		},
		{
			name: "easy rating jumps two increments",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 5, WeightKg: 60, Rating: 2,
				Equipment: progression.EquipmentMachine, IsCompound: false,
				ExerciseName: "Leg Press",
			},
			goal:       progression.GoalStrength,
			settings:   fixed(5),
			wantWeight: 70,
			wantReps:   5,
		},
		{
			name: "hard rating holds the target",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 5, WeightKg: 100, Rating: 4,
				Equipment: progression.EquipmentBarbell, IsCompound: true,
				ExerciseName: "Squat",
			},
			goal:       progression.GoalStrength,
			settings:   adaptive(),
			wantWeight: 100,
			wantReps:   5,
		},
		{
			name: "too hard rating backs off two increments",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 5, WeightKg: 100, Rating: 5,
				Equipment: progression.EquipmentBarbell, IsCompound: true,
				ExerciseName: "Squat",
			},
			goal:       progression.GoalStrength,
			settings:   adaptive(),
			wantWeight: 95,
			wantReps:   5,
			wantDeload: true,
		},
		{
			name: "compound lift under hypertrophy goal still progresses by load",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 8, WeightKg: 60, Rating: 3,
				Equipment: progression.EquipmentBarbell, IsCompound: true,
				ExerciseName: "Bench Press",
			},
			goal:       progression.GoalHypertrophy,
			settings:   adaptive(),
			wantWeight: 62.5,
			wantReps:   8,
		},
		{
			name: "out of range rating leaves the target unchanged",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 5, WeightKg: 100, Rating: 7,
				Equipment: progression.EquipmentBarbell, IsCompound: true,
				ExerciseName: "Squat",
			},
			goal:       progression.GoalStrength,
			settings:   adaptive(),
			wantWeight: 100,
			wantReps:   5,
		},
		{
			name: "too hard rating on a light load can go negative",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 10, WeightKg: 2, Rating: 5,
				Equipment: progression.EquipmentCable, IsCompound: true,
				ExerciseName: "Face Pull",
			},
			goal:       progression.GoalStrength,
			settings:   fixed(2.5),
			wantWeight: -3,
			wantReps:   10,
			wantDeload: true,
		},
		{
			name: "adaptive increment is 1 kg below 10 kg",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 8, WeightKg: 8, Rating: 3,
				Equipment: progression.EquipmentDumbbell, IsCompound: true,
				ExerciseName: "Dumbbell Press",
			},
			goal:       progression.GoalStrength,
			settings:   adaptive(),
			wantWeight: 9,
			wantReps:   8,
		},
		{
			name: "adaptive increment is 2 kg from 10 kg up",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 8, WeightKg: 10, Rating: 3,
				Equipment: progression.EquipmentDumbbell, IsCompound: true,
				ExerciseName: "Dumbbell Press",
			},
			goal:       progression.GoalStrength,
			settings:   adaptive(),
			wantWeight: 12,
			wantReps:   8,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := progression.Calculate(tc.sample, tc.goal, tc.settings)

			if got.WeightKg != tc.wantWeight {
				t.Errorf("WeightKg = %v, want %v", got.WeightKg, tc.wantWeight)
			}
			if got.Reps != tc.wantReps {
				t.Errorf("Reps = %d, want %d", got.Reps, tc.wantReps)
			}
			if got.Deload != tc.wantDeload {
				t.Errorf("Deload = %t, want %t", got.Deload, tc.wantDeload)
			}
			if got.Reps != tc.sample.Reps {
				t.Errorf("load-only progression moved reps from %d to %d", tc.sample.Reps, got.Reps)
			}
		})
	}
}

func TestCalculateRepOnlyBodyweight(t *testing.T) {
	testCases := []struct {
		name     string
		exercise string
		reps     int
		rating   int
		wantReps int
	}{
		{name: "pull-up very easy adds two reps", exercise: "Pull-up", reps: 8, rating: 1, wantReps: 10},
		{name: "chin-up easy adds one rep", exercise: "chin-up", reps: 8, rating: 2, wantReps: 9},
		{name: "dip moderate adds one rep", exercise: "Dip", reps: 12, rating: 3, wantReps: 13},
		{name: "push-up hard holds reps", exercise: "Push-up", reps: 15, rating: 4, wantReps: 15},
		{name: "push-up deficit too hard removes two reps", exercise: "Push-up Deficit", reps: 10, rating: 5, wantReps: 8},
		{name: "reps cap at twenty", exercise: "pull-up", reps: 19, rating: 1, wantReps: 20},
		{name: "reps floor at one", exercise: "dip", reps: 2, rating: 5, wantReps: 1},
		{name: "unknown rating holds reps", exercise: "pull-up", reps: 8, rating: 0, wantReps: 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sample := progression.PerformanceSample{
				Sets: 3, Reps: tc.reps, WeightKg: 5, Rating: tc.rating,
				Equipment:    progression.EquipmentBodyweight,
				ExerciseName: tc.exercise,
			}
			// Goal must not matter for the special bodyweight exercises.
			for _, goal := range []progression.Goal{progression.GoalStrength, progression.GoalHypertrophy} {
				got := progression.Calculate(sample, goal, adaptive())

				if got.WeightKg != 0 {
					t.Errorf("goal %s: WeightKg = %v, want pinned to 0", goal, got.WeightKg)
				}
				if got.Reps != tc.wantReps {
					t.Errorf("goal %s: Reps = %d, want %d", goal, got.Reps, tc.wantReps)
				}
				if got.Reps < progression.MinTargetReps || got.Reps > progression.MaxTargetReps {
					t.Errorf("goal %s: Reps = %d outside [%d, %d]",
						goal, got.Reps, progression.MinTargetReps, progression.MaxTargetReps)
				}
			}
		})
	}
}

func TestCalculateVolumeGreedy(t *testing.T) {
	testCases := []struct {
		name       string
		sample     progression.PerformanceSample
		settings   progression.IncrementSettings
		wantWeight float64
		wantReps   int
	}{
		{
			// volIfWeightUp = 3×10×14−360 = 60, volIfRepUp = 3×11×12−360 = 36.
			name: "easy rating favors the larger volume jump",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 10, WeightKg: 12, Rating: 2,
				Equipment: progression.EquipmentDumbbell, ExerciseName: "Dumbbell Curl",
			},
			settings:   adaptive(),
			wantWeight: 14,
			wantReps:   10,
		},
		{
			// Same marginals as above; moderate picks the smaller one.
			name: "moderate rating favors the smaller volume jump",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 10, WeightKg: 12, Rating: 3,
				Equipment: progression.EquipmentDumbbell, ExerciseName: "Dumbbell Curl",
			},
			settings:   adaptive(),
			wantWeight: 12,
			wantReps:   11,
		},
		{
			name: "very easy rating moves both dimensions",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 10, WeightKg: 12, Rating: 1,
				Equipment: progression.EquipmentDumbbell, ExerciseName: "Dumbbell Curl",
			},
			settings:   adaptive(),
			wantWeight: 14,
			wantReps:   11,
		},
		{
			name: "very easy rating at the rep cap only moves weight",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 20, WeightKg: 12, Rating: 1,
				Equipment: progression.EquipmentDumbbell, ExerciseName: "Dumbbell Curl",
			},
			settings:   adaptive(),
			wantWeight: 14,
			wantReps:   20,
		},
		{
			name: "easy rating at the rep cap takes the weight path",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 20, WeightKg: 15, Rating: 2,
				Equipment: progression.EquipmentCable, ExerciseName: "Triceps Pushdown",
			},
			settings:   fixed(2.5),
			wantWeight: 17.5,
			wantReps:   20,
		},
		{
			name: "moderate rating at the rep cap takes the weight path",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 20, WeightKg: 15, Rating: 3,
				Equipment: progression.EquipmentCable, ExerciseName: "Triceps Pushdown",
			},
			settings:   fixed(2.5),
			wantWeight: 17.5,
			wantReps:   20,
		},
		{
			name: "too hard rating drops one increment",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 12, WeightKg: 10, Rating: 5,
				Equipment: progression.EquipmentMachine, ExerciseName: "Leg Extension",
			},
			settings:   fixed(5),
			wantWeight: 5,
			wantReps:   12,
		},
		{
			name: "hard rating holds both dimensions",
			sample: progression.PerformanceSample{
				Sets: 3, Reps: 12, WeightKg: 10, Rating: 4,
				Equipment: progression.EquipmentMachine, ExerciseName: "Leg Extension",
			},
			settings:   fixed(5),
			wantWeight: 10,
			wantReps:   12,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := progression.Calculate(tc.sample, progression.GoalHypertrophy, tc.settings)

			if got.WeightKg != tc.wantWeight {
				t.Errorf("WeightKg = %v, want %v", got.WeightKg, tc.wantWeight)
			}
			if got.Reps != tc.wantReps {
				t.Errorf("Reps = %d, want %d", got.Reps, tc.wantReps)
			}

			// Outside rating 1, never both dimensions at once.
			if tc.sample.Rating != progression.RatingVeryEasy {
				weightMoved := got.WeightKg != tc.sample.WeightKg
				repsMoved := got.Reps != tc.sample.Reps
				if weightMoved && repsMoved {
					t.Errorf("both weight and reps moved for rating %d", tc.sample.Rating)
				}
			}
		})
	}
}

// TestCalculateIsPure verifies that repeated calls with the same input return
// the same result.
func TestCalculateIsPure(t *testing.T) {
	sample := progression.PerformanceSample{
		Sets: 3, Reps: 10, WeightKg: 12, Rating: 2,
		Equipment: progression.EquipmentDumbbell, ExerciseName: "Dumbbell Curl",
	}

	first := progression.Calculate(sample, progression.GoalHypertrophy, adaptive())
	second := progression.Calculate(sample, progression.GoalHypertrophy, adaptive())

	if first != second {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

func TestDefaultIncrementAppliesWhenSettingsAbsent(t *testing.T) {
	sample := progression.PerformanceSample{
		Sets: 3, Reps: 5, WeightKg: 100, Rating: 3,
		Equipment: progression.EquipmentBarbell, IsCompound: true,
		ExerciseName: "Squat",
	}

	got := progression.Calculate(sample, progression.GoalStrength, progression.IncrementSettings{})

	if want := 100 + progression.DefaultIncrementKg; got.WeightKg != want {
		t.Errorf("WeightKg = %v, want %v", got.WeightKg, want)
	}
}
