package main

import (
	"net/http"

	"github.com/akorpela/liftlog/internal/progression"
)

type incrementSettingsJSON struct {
	BarbellKg  float64 `json:"barbell_kg"`
	DumbbellKg float64 `json:"dumbbell_kg"`
	CableKg    float64 `json:"cable_kg"`
	MachineKg  float64 `json:"machine_kg"`
	Adaptive   bool    `json:"adaptive"`
}

func (app *application) incrementSettingsGET(w http.ResponseWriter, r *http.Request) {
	settings, err := app.workoutService.IncrementSettings(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, incrementSettingsJSON(settings))
}

func (app *application) incrementSettingsPUT(w http.ResponseWriter, r *http.Request) {
	var req incrementSettingsJSON
	if !app.readJSON(w, r, &req) {
		return
	}

	if req.BarbellKg < 0 || req.DumbbellKg < 0 || req.CableKg < 0 || req.MachineKg < 0 {
		app.clientError(w, r, http.StatusUnprocessableEntity, "increments must not be negative")
		return
	}

	if err := app.workoutService.SaveIncrementSettings(r.Context(), progression.IncrementSettings(req)); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, req)
}
