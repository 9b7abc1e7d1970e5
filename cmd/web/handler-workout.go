package main

import (
	"net/http"
	"time"

	"github.com/akorpela/liftlog/internal/workout"
)

type completionRequest struct {
	CompletedAt time.Time                   `json:"completed_at"`
	BadDay      bool                        `json:"bad_day"`
	Performed   []workout.PerformedExercise `json:"performed"`
}

// workoutCompletePOST records a finished workout. An omitted completed_at
// means the workout finished just now.
func (app *application) workoutCompletePOST(w http.ResponseWriter, r *http.Request) {
	var req completionRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	err := app.workoutService.CompleteWorkout(r.Context(), workout.Completion{
		CompletedAt: req.CompletedAt,
		BadDay:      req.BadDay,
		Performed:   req.Performed,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (app *application) workoutHistoryGET(w http.ResponseWriter, r *http.Request) {
	since, ok := app.parseSinceParam(w, r)
	if !ok {
		return
	}

	completions, err := app.workoutService.History(r.Context(), since)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	if completions == nil {
		completions = []workout.Completion{}
	}
	app.writeJSON(w, r, http.StatusOK, completions)
}
