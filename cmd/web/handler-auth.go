package main

import (
	"net/http"

	"github.com/akorpela/liftlog/internal/errors"
)

type registerRequest struct {
	DisplayName string `json:"display_name"`
}

type registerResponse struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	APIToken    string `json:"api_token"`
}

// registerPOST creates a new account and returns its API token. The token is
// only ever shown here, so the client has to store it.
func (app *application) registerPOST(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !app.readJSON(w, r, &req) {
		return
	}
	if req.DisplayName == "" {
		app.clientError(w, r, http.StatusUnprocessableEntity, "display_name is required")
		return
	}

	user, err := app.workoutService.Register(r.Context(), req.DisplayName)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "register user"))
		return
	}

	app.writeJSON(w, r, http.StatusCreated, registerResponse{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		APIToken:    user.APIToken,
	})
}

type loginRequest struct {
	APIToken string `json:"api_token"`
}

// loginPOST exchanges an API token for a session cookie.
func (app *application) loginPOST(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	userID, err := app.workoutService.Authenticate(r.Context(), req.APIToken)
	if err != nil {
		app.clientError(w, r, http.StatusUnauthorized, "invalid API token")
		return
	}

	// Renew the session token on privilege change to prevent session fixation.
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyUserID, userID)

	app.writeJSON(w, r, http.StatusOK, map[string]string{"status": "logged in"})
}

// logoutPOST destroys the session.
func (app *application) logoutPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "destroy session"))
		return
	}
	app.writeJSON(w, r, http.StatusOK, map[string]string{"status": "logged out"})
}
