// Package progression computes the next target weight and reps for an exercise
// from one completed performance and its difficulty rating.
//
// Calculate is a pure function: it reads no clocks, performs no I/O, and
// identical inputs always produce identical results. Callers fetch the user's
// increment settings and the exercise classification, invoke Calculate, and
// persist the returned target themselves.
package progression

import (
	"math"
	"strings"
)

// Goal selects the progression style of a program.
type Goal string

// Program goal constants.
const (
	GoalStrength    Goal = "strength"
	GoalHypertrophy Goal = "hypertrophy"
)

// Equipment identifies the loading implement of an exercise.
type Equipment string

// Equipment type constants.
const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentCable      Equipment = "cable"
	EquipmentMachine    Equipment = "machine"
	EquipmentBodyweight Equipment = "bodyweight"
)

// Difficulty rating constants. Ratings outside this range leave the target
// unchanged; strict validation belongs to the boundary layer.
const (
	RatingVeryEasy = 1
	RatingEasy     = 2
	RatingModerate = 3
	RatingHard     = 4
	RatingTooHard  = 5
)

// Rep bounds enforced after progression.
const (
	MinTargetReps = 1
	MaxTargetReps = 20
)

// Adaptive increment constants in kilograms.
const (
	adaptiveBarbellIncrementKg = 2.5
	adaptiveLightIncrementKg   = 1.0
	adaptiveHeavyIncrementKg   = 2.0
	adaptiveLightThresholdKg   = 10.0
)

// DefaultIncrementKg is used for any equipment whose increment setting is absent.
const DefaultIncrementKg = 2.5

// PerformanceSample describes one completed exercise performance together with
// the user's difficulty rating for it.
type PerformanceSample struct {
	Sets         int
	Reps         int
	WeightKg     float64
	Rating       int
	Equipment    Equipment
	IsCompound   bool
	ExerciseName string
}

// IncrementSettings carries the user's per-equipment weight increments.
// Zero-valued increments fall back to DefaultIncrementKg. When Adaptive is
// set, the fixed increments are ignored and the increment is derived from the
// equipment type and current weight instead.
type IncrementSettings struct {
	BarbellKg  float64
	DumbbellKg float64
	CableKg    float64
	MachineKg  float64
	Adaptive   bool
}

// Result is the next target returned by Calculate. Deload reports that the
// rating reduced the target rather than holding or raising it.
type Result struct {
	WeightKg float64
	Reps     int
	Deload   bool
}

// repOnlyBodyweightExercises always progress by reps with the weight pinned
// to zero, regardless of program goal. Matched case-insensitively.
var repOnlyBodyweightExercises = map[string]struct{}{
	"pull-up":         {},
	"chin-up":         {},
	"dip":             {},
	"push-up":         {},
	"push-up deficit": {},
}

// style is the progression variant selected for a sample. Exactly one style
// applies to every sample, making the dispatch table exhaustive and testable.
type style int

const (
	styleRepOnlyBodyweight style = iota
	styleLoadOnly
	styleVolumeGreedy
)

// classify picks the progression style for a sample.
//
// Compound lifts progress by load only even under a hypertrophy goal: they
// are CNS-intensive and rep-range drift is undesirable. Isolation work under
// a hypertrophy goal progresses by whichever dimension currently offers the
// better marginal training volume.
func classify(sample PerformanceSample, goal Goal) style {
	switch {
	case sample.Equipment == EquipmentBodyweight && isRepOnlyBodyweight(sample.ExerciseName):
		return styleRepOnlyBodyweight
	case goal != GoalHypertrophy || sample.IsCompound:
		return styleLoadOnly
	default:
		return styleVolumeGreedy
	}
}

func isRepOnlyBodyweight(name string) bool {
	_, ok := repOnlyBodyweightExercises[strings.ToLower(name)]
	return ok
}

// Calculate returns the next target weight and reps for the sample.
func Calculate(sample PerformanceSample, goal Goal, settings IncrementSettings) Result {
	increment := incrementFor(sample, settings)

	switch classify(sample, goal) {
	case styleRepOnlyBodyweight:
		return progressRepOnly(sample)
	case styleLoadOnly:
		return progressLoadOnly(sample, increment)
	default:
		return progressVolumeGreedy(sample, increment)
	}
}

// incrementFor resolves the weight increment for a sample.
//
// Fixed increments come from the user's settings with the bodyweight type
// sharing the dumbbell increment. Adaptive increments ignore the settings:
// barbells move in standard plate jumps and everything else moves by 1 kg
// until the load reaches 10 kg, then by 2 kg.
func incrementFor(sample PerformanceSample, settings IncrementSettings) float64 {
	if settings.Adaptive {
		if sample.Equipment == EquipmentBarbell {
			return adaptiveBarbellIncrementKg
		}
		if sample.WeightKg < adaptiveLightThresholdKg {
			return adaptiveLightIncrementKg
		}
		return adaptiveHeavyIncrementKg
	}

	var increment float64
	switch sample.Equipment {
	case EquipmentBarbell:
		increment = settings.BarbellKg
	case EquipmentDumbbell, EquipmentBodyweight:
		increment = settings.DumbbellKg
	case EquipmentCable:
		increment = settings.CableKg
	case EquipmentMachine:
		increment = settings.MachineKg
	}
	if increment == 0 {
		increment = DefaultIncrementKg
	}
	return increment
}

// progressRepOnly moves reps for the special bodyweight exercises. The weight
// is always pinned to zero, even if the sample carried added load.
func progressRepOnly(sample PerformanceSample) Result {
	reps := sample.Reps
	switch sample.Rating {
	case RatingVeryEasy:
		reps = clampReps(reps + 2)
	case RatingEasy, RatingModerate:
		reps = clampReps(reps + 1)
	case RatingHard:
	case RatingTooHard:
		reps = clampReps(reps - 2)
	}
	return Result{
		WeightKg: 0,
		Reps:     reps,
		Deload:   sample.Rating == RatingTooHard,
	}
}

// progressLoadOnly moves weight by a multiple of the increment; reps never
// change. The target is not floored at zero: a too-hard rating on a very
// light load can produce a negative weight, which callers decide how to
// present.
func progressLoadOnly(sample PerformanceSample, increment float64) Result {
	weight := sample.WeightKg
	switch sample.Rating {
	case RatingVeryEasy:
		weight += 4 * increment
	case RatingEasy:
		weight += 2 * increment
	case RatingModerate:
		weight += increment
	case RatingHard:
	case RatingTooHard:
		weight -= 2 * increment
	}
	return Result{
		WeightKg: weight,
		Reps:     sample.Reps,
		Deload:   sample.Rating == RatingTooHard,
	}
}

// progressVolumeGreedy trades off a weight increase against a rep increase
// for isolation work, comparing the marginal volume (sets × reps × weight)
// each path would add. The rep path is priced at +Inf once the rep cap is
// reached so the weight path always wins there.
func progressVolumeGreedy(sample PerformanceSample, increment float64) Result {
	var (
		weight = sample.WeightKg
		reps   = sample.Reps
		sets   = float64(sample.Sets)
	)

	currentVolume := sets * float64(reps) * weight
	volumeIfWeightUp := sets*float64(reps)*(weight+increment) - currentVolume
	volumeIfRepUp := math.Inf(1)
	if reps < MaxTargetReps {
		volumeIfRepUp = sets*float64(reps+1)*weight - currentVolume
	}

	switch sample.Rating {
	case RatingVeryEasy:
		// Both dimensions move together; no comparison.
		weight += increment
		if reps < MaxTargetReps {
			reps++
		}
	case RatingEasy:
		// Favor the bigger marginal volume jump.
		switch {
		case reps >= MaxTargetReps:
			weight += increment
		case volumeIfWeightUp > volumeIfRepUp:
			weight += increment
		default:
			reps++
		}
	case RatingModerate:
		// Conservative: the smaller marginal volume increase.
		switch {
		case reps >= MaxTargetReps:
			weight += increment
		case volumeIfWeightUp < volumeIfRepUp:
			weight += increment
		default:
			reps++
		}
	case RatingHard:
	case RatingTooHard:
		weight -= increment
	}

	return Result{
		WeightKg: weight,
		Reps:     reps,
		Deload:   sample.Rating == RatingTooHard,
	}
}

func clampReps(reps int) int {
	return min(max(reps, MinTargetReps), MaxTargetReps)
}
