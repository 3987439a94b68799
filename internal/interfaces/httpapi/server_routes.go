package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerTeamGoalsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{team}/goals", handler.GetTeamGoals)
	mux.HandleFunc("POST /v1/teams/goals/batch", handler.GetTeamGoalsBatch)
}
