package workout

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/akorpela/liftlog/internal/progression"
)

// Exercise represents a single exercise type, e.g. Squat, Bench Press, etc.
type Exercise struct {
	ID                  int                   `json:"id"`
	Name                string                `json:"name"`
	Equipment           progression.Equipment `json:"equipment"`
	IsCompound          bool                  `json:"is_compound"`
	DescriptionMarkdown string                `json:"description_markdown"`
	MuscleGroups        []string              `json:"muscle_groups"`
}

// Program is a user's training program. ExpectedPerWeek is how many workouts
// the user plans to complete each week and drives the consistency metrics.
type Program struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	Goal            progression.Goal `json:"goal"`
	ExpectedPerWeek int              `json:"expected_per_week"`
	StartedAt       time.Time        `json:"started_at"`
}

// Prescription is the current target for one exercise in a program. It is
// what the next workout should attempt and what progression advances.
type Prescription struct {
	ExerciseID int     `json:"exercise_id"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weight_kg"`
}

// PerformedExercise records what the user actually did for one exercise in a
// completed workout, with the 1-5 difficulty rating.
type PerformedExercise struct {
	ExerciseID int     `json:"exercise_id"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weight_kg"`
	Rating     int     `json:"rating"`
}

// Completion is one finished workout. BadDay marks workouts that count toward
// attendance but must not advance any prescriptions.
type Completion struct {
	ID          int                 `json:"id"`
	CompletedAt time.Time           `json:"completed_at"`
	BadDay      bool                `json:"bad_day"`
	Performed   []PerformedExercise `json:"performed"`
}

type exerciseJSONSchema struct {
	muscleGroups []string
}

func (ejs exerciseJSONSchema) MarshalJSON() ([]byte, error) {
	// encode the known muscle groups into the JSON schema
	muscleGroupsJSON, err := json.Marshal(ejs.muscleGroups)
	if err != nil {
		return nil, fmt.Errorf("marshal muscle groups: %w", err)
	}

	return []byte(fmt.Sprintf(`{
		  "type": "object",
		  "required": [
			"name",
			"equipment",
			"is_compound",
			"description_markdown",
			"muscle_groups"
		  ],
		  "properties": {
			"name": {
			  "type": "string",
			  "description": "Name of the exercise"
			},
			"equipment": {
			  "type": "string",
			  "description": "Loading implement of the exercise",
			  "enum": ["barbell", "dumbbell", "cable", "machine", "bodyweight"]
			},
			"is_compound": {
			  "type": "boolean",
			  "description": "Whether the exercise is a multi-joint compound movement"
			},
			"description_markdown": {
			  "type": "string",
			  "description": "Markdown description of the exercise"
			},
			"muscle_groups": {
			  "type": "array",
			  "description": "Muscle groups targeted by the exercise",
			  "items": {
				"type": "string",
				"enum": %s
			  }
			}
		  },
		  "additionalProperties": false
		}`, muscleGroupsJSON)), nil
}

// ProgressionEvent records one applied progression: the target before and
// after a completed workout advanced it.
type ProgressionEvent struct {
	ExerciseID  int       `json:"exercise_id"`
	AppliedAt   time.Time `json:"applied_at"`
	OldWeightKg float64   `json:"old_weight_kg"`
	OldReps     int       `json:"old_reps"`
	NewWeightKg float64   `json:"new_weight_kg"`
	NewReps     int       `json:"new_reps"`
	Deload      bool      `json:"deload"`
}

// User is an account identified by an opaque API token.
type User struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	APIToken    string `json:"-"`
}
