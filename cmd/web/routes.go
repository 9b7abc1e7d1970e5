package main

import "net/http"

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noAuth = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.authenticate(shared(next)))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
	)

	mux.Handle("POST /api/register", session(http.HandlerFunc(app.registerPOST)))
	mux.Handle("POST /api/login", session(http.HandlerFunc(app.loginPOST)))
	mux.Handle("POST /api/logout", mustSession(http.HandlerFunc(app.logoutPOST)))
	mux.Handle("GET /api/healthy", noAuth(http.HandlerFunc(app.healthy)))

	mux.Handle("GET /api/program", mustSession(http.HandlerFunc(app.programGET)))
	mux.Handle("PUT /api/program", mustSession(http.HandlerFunc(app.programPUT)))

	mux.Handle("GET /api/settings/increments", mustSession(http.HandlerFunc(app.incrementSettingsGET)))
	mux.Handle("PUT /api/settings/increments", mustSession(http.HandlerFunc(app.incrementSettingsPUT)))

	mux.Handle("GET /api/prescriptions", mustSession(http.HandlerFunc(app.prescriptionsGET)))
	mux.Handle("PUT /api/prescriptions", mustSession(http.HandlerFunc(app.prescriptionPUT)))

	mux.Handle("POST /api/workouts/complete", mustSession(http.HandlerFunc(app.workoutCompletePOST)))
	mux.Handle("GET /api/workouts/history", mustSession(http.HandlerFunc(app.workoutHistoryGET)))

	mux.Handle("GET /api/stats/streaks", mustSession(http.HandlerFunc(app.streaksGET)))
	mux.Handle("GET /api/stats/volume", mustSession(http.HandlerFunc(app.volumeGET)))

	mux.Handle("GET /api/exercises", mustSession(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("GET /api/exercises/{exerciseID}", mustSession(http.HandlerFunc(app.exerciseGET)))
	mux.Handle("PUT /api/exercises/{exerciseID}", mustSession(http.HandlerFunc(app.exercisePUT)))
	mux.Handle("GET /api/exercises/{exerciseID}/progression", mustSession(http.HandlerFunc(app.exerciseProgressionGET)))
	mux.Handle("GET /api/exercises/{exerciseID}/last-performance", mustSession(http.HandlerFunc(app.exerciseLastPerformanceGET)))
	mux.Handle("POST /api/exercises/generate", mustSession(http.HandlerFunc(app.exerciseGeneratePOST)))

	return mux
}
