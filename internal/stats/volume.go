package stats

import (
	"sort"
	"time"
)

// VolumeSample describes one completed exercise for volume aggregation. An
// exercise may be tagged with several muscle groups.
type VolumeSample struct {
	Sets         int
	Reps         int
	WeightKg     float64
	ExerciseName string
	MuscleGroups []string
	CompletedAt  time.Time
}

// DateVolume is the training volume of one calendar day.
type DateVolume struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

// GroupVolume is the training volume attributed to one muscle group.
type GroupVolume struct {
	MuscleGroup string  `json:"muscle_group"`
	Volume      float64 `json:"volume"`
}

// ExerciseVolume is the training volume of one exercise.
type ExerciseVolume struct {
	ExerciseName string  `json:"exercise_name"`
	Volume       float64 `json:"volume"`
}

// WeekVolume is the training volume of one week, keyed like "2026-W35".
type WeekVolume struct {
	Week   string  `json:"week"`
	Volume float64 `json:"volume"`
}

// VolumeReport breaks the same sample set down four independent ways plus a
// grand total. ByDate and ByExercise are full partitions and each sums to
// Total; ByMuscleGroup over-counts by design (see AggregateVolume).
type VolumeReport struct {
	ByDate        []DateVolume     `json:"volume_by_date"`
	ByMuscleGroup []GroupVolume    `json:"volume_by_muscle_group"`
	ByExercise    []ExerciseVolume `json:"volume_by_exercise"`
	ByWeek        []WeekVolume     `json:"weekly_data"`
	Total         float64          `json:"total_volume"`
}

// AggregateVolume reduces completed-exercise samples into per-date,
// per-muscle-group, per-exercise, and per-week volumes, where each sample's
// volume is sets × reps × weight.
//
// A sample contributes its full volume to every muscle group it is tagged
// with. The breakdown measures total stimulus per muscle rather than
// partitioning a fixed budget, so a compound lift counts once per target
// muscle and the muscle-group sum can exceed Total. Splitting the volume
// across groups would understate compound-lift contribution and must not be
// introduced.
func AggregateVolume(samples []VolumeSample) VolumeReport {
	var (
		byDate     = map[string]float64{}
		byGroup    = map[string]float64{}
		byExercise = map[string]float64{}
		byWeek     = map[string]float64{}
		weekOrder  = map[string][2]int{}
		total      float64
	)

	for _, sample := range samples {
		volume := float64(sample.Sets) * float64(sample.Reps) * sample.WeightKg
		total += volume

		byDate[sample.CompletedAt.Format(time.DateOnly)] += volume
		byExercise[sample.ExerciseName] += volume
		for _, group := range sample.MuscleGroups {
			byGroup[group] += volume
		}

		key := WeekKey(sample.CompletedAt)
		byWeek[key] += volume
		weekOrder[key] = [2]int{sample.CompletedAt.Year(), WeekNumber(sample.CompletedAt)}
	}

	report := VolumeReport{
		ByDate:        make([]DateVolume, 0, len(byDate)),
		ByMuscleGroup: make([]GroupVolume, 0, len(byGroup)),
		ByExercise:    make([]ExerciseVolume, 0, len(byExercise)),
		ByWeek:        make([]WeekVolume, 0, len(byWeek)),
		Total:         total,
	}

	for date, volume := range byDate {
		report.ByDate = append(report.ByDate, DateVolume{Date: date, Volume: volume})
	}
	sort.Slice(report.ByDate, func(i, j int) bool {
		return report.ByDate[i].Date < report.ByDate[j].Date
	})

	for group, volume := range byGroup {
		report.ByMuscleGroup = append(report.ByMuscleGroup, GroupVolume{MuscleGroup: group, Volume: volume})
	}
	sort.Slice(report.ByMuscleGroup, func(i, j int) bool {
		left, right := report.ByMuscleGroup[i], report.ByMuscleGroup[j]
		if left.Volume != right.Volume {
			return left.Volume > right.Volume
		}
		return left.MuscleGroup < right.MuscleGroup
	})

	for name, volume := range byExercise {
		report.ByExercise = append(report.ByExercise, ExerciseVolume{ExerciseName: name, Volume: volume})
	}
	sort.Slice(report.ByExercise, func(i, j int) bool {
		left, right := report.ByExercise[i], report.ByExercise[j]
		if left.Volume != right.Volume {
			return left.Volume > right.Volume
		}
		return left.ExerciseName < right.ExerciseName
	})

	for key, volume := range byWeek {
		report.ByWeek = append(report.ByWeek, WeekVolume{Week: key, Volume: volume})
	}
	sort.Slice(report.ByWeek, func(i, j int) bool {
		left, right := weekOrder[report.ByWeek[i].Week], weekOrder[report.ByWeek[j].Week]
		if left[0] != right[0] {
			return left[0] < right[0]
		}
		return left[1] < right[1]
	})

	return report
}
