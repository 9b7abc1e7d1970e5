package main

import (
	"net/http"
	"time"

	"github.com/akorpela/liftlog/internal/progression"
	"github.com/akorpela/liftlog/internal/workout"
)

type programRequest struct {
	Name            string `json:"name"`
	Goal            string `json:"goal"`
	ExpectedPerWeek int    `json:"expected_per_week"`
	StartedAt       string `json:"started_at"`
}

func (app *application) programGET(w http.ResponseWriter, r *http.Request) {
	program, err := app.workoutService.Program(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, program)
}

func (app *application) programPUT(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	startedAt := time.Now()
	if req.StartedAt != "" {
		var err error
		if startedAt, err = time.Parse(time.DateOnly, req.StartedAt); err != nil {
			app.clientError(w, r, http.StatusBadRequest, "started_at must be a date formatted as 2006-01-02")
			return
		}
	}

	err := app.workoutService.SaveProgram(r.Context(), workout.Program{
		Name:            req.Name,
		Goal:            progression.Goal(req.Goal),
		ExpectedPerWeek: req.ExpectedPerWeek,
		StartedAt:       startedAt,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	program, err := app.workoutService.Program(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, program)
}
