package main

import "net/http"

func (app *application) streaksGET(w http.ResponseWriter, r *http.Request) {
	report, err := app.workoutService.Statistics(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, report)
}

func (app *application) volumeGET(w http.ResponseWriter, r *http.Request) {
	since, ok := app.parseSinceParam(w, r)
	if !ok {
		return
	}

	report, err := app.workoutService.VolumeReport(r.Context(), since)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, report)
}
