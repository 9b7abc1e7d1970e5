package main

import (
	"net/http"

	"github.com/akorpela/liftlog/internal/workout"
)

func (app *application) prescriptionsGET(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := app.workoutService.Prescriptions(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	if prescriptions == nil {
		prescriptions = []workout.Prescription{}
	}
	app.writeJSON(w, r, http.StatusOK, prescriptions)
}

func (app *application) prescriptionPUT(w http.ResponseWriter, r *http.Request) {
	var prescription workout.Prescription
	if !app.readJSON(w, r, &prescription) {
		return
	}

	if err := app.workoutService.SavePrescription(r.Context(), prescription); err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, prescription)
}
