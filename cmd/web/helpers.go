package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/akorpela/liftlog/internal/errors"
	"github.com/akorpela/liftlog/internal/workout"
)

const maxRequestBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes data to the response with the given status code.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// readJSON decodes the request body into dst. On failure it sends a 400
// response and returns false.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "malformed JSON body: "+err.Error())
		return false
	}
	return true
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, errorResponse{Error: message})
}

// handleServiceError maps service errors to responses. Not-found and
// validation failures are the client's fault, everything else is ours.
func (app *application) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, workout.ErrNotFound):
		app.clientError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, workout.ErrValidation):
		app.clientError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		app.serverError(w, r, err)
	}
}

// parseExerciseIDParam parses the "exerciseID" path parameter from the request URL.
// On failure, sends HTTP 404 response automatically.
func (app *application) parseExerciseIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	exerciseID, err := strconv.Atoi(r.PathValue("exerciseID"))
	if err != nil {
		app.clientError(w, r, http.StatusNotFound, "invalid exercise ID")
		return 0, false
	}
	return exerciseID, true
}

// parseSinceParam parses the optional "since" query parameter as a date.
// A missing parameter yields the zero time, meaning no lower bound.
func (app *application) parseSinceParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	sinceStr := r.URL.Query().Get("since")
	if sinceStr == "" {
		return time.Time{}, true
	}
	since, err := time.Parse(time.DateOnly, sinceStr)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "since must be a date formatted as 2006-01-02")
		return time.Time{}, false
	}
	return since, true
}
