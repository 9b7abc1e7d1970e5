package main

import (
	"net/http"

	"github.com/akorpela/liftlog/internal/errors"
	"github.com/akorpela/liftlog/internal/workout"
)

func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	exercises, err := app.workoutService.ListExercises(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercises)
}

type exerciseResponse struct {
	workout.Exercise
	DescriptionHTML string `json:"description_html"`
}

// exerciseGET returns one exercise with its description rendered to HTML.
func (app *application) exerciseGET(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := app.parseExerciseIDParam(w, r)
	if !ok {
		return
	}

	exercise, err := app.workoutService.GetExercise(r.Context(), exerciseID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	descriptionHTML, err := app.workoutService.DescriptionHTML(exercise)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "render description"))
		return
	}

	app.writeJSON(w, r, http.StatusOK, exerciseResponse{
		Exercise:        exercise,
		DescriptionHTML: descriptionHTML,
	})
}

func (app *application) exercisePUT(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := app.parseExerciseIDParam(w, r)
	if !ok {
		return
	}

	var exercise workout.Exercise
	if !app.readJSON(w, r, &exercise) {
		return
	}
	exercise.ID = exerciseID

	if err := app.workoutService.UpdateExercise(r.Context(), exercise); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercise)
}

// exerciseProgressionGET returns how the exercise's target has moved over
// time, one event per completed workout that advanced it.
func (app *application) exerciseProgressionGET(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := app.parseExerciseIDParam(w, r)
	if !ok {
		return
	}

	events, err := app.workoutService.ProgressionHistory(r.Context(), exerciseID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	if events == nil {
		events = []workout.ProgressionEvent{}
	}
	app.writeJSON(w, r, http.StatusOK, events)
}

func (app *application) exerciseLastPerformanceGET(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := app.parseExerciseIDParam(w, r)
	if !ok {
		return
	}

	performed, err := app.workoutService.LastPerformance(r.Context(), exerciseID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, performed)
}

type generateExerciseRequest struct {
	Name string `json:"name"`
}

// exerciseGeneratePOST creates a new catalog exercise. Description and muscle
// groups come from AI generation when configured, with a minimal fallback.
func (app *application) exerciseGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var req generateExerciseRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		app.clientError(w, r, http.StatusUnprocessableEntity, "name is required")
		return
	}

	exercise, err := app.workoutService.GenerateExercise(r.Context(), req.Name)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, exercise)
}
