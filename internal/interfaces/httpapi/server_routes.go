package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerReadinessRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}/readiness", handler.GetLeagueReadiness)
	mux.HandleFunc("POST /v1/readiness/batch", handler.BatchReadiness)
	mux.HandleFunc("GET /v1/bye-weeks/{week}", handler.GetByeWeek)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/session", handler.GetSession)
	mux.HandleFunc("PUT /v1/session/league", handler.SubmitSessionLeague)
}
