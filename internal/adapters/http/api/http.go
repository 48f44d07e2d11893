// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mergington/activities/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ListActivities returns every activity keyed by name.
	ListActivities(ctx context.Context) model.Roster

	// Signup registers email for the named activity.
	Signup(ctx context.Context, name, email string) error

	// RemoveParticipant removes email from the named activity.
	RemoveParticipant(ctx context.Context, name, email string) error
}

// Roster mirrors the read shape returned by GET /activities.
type Roster = model.Roster

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	signupHandler     *SignupHandler
	unregisterHandler *UnregisterHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps),
		signupHandler:     NewSignupHandler(deps),
		unregisterHandler: NewUnregisterHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", RequestIDMiddleware(MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")))
	mux.HandleFunc("/stats", RequestIDMiddleware(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/activities", RequestIDMiddleware(MetricsMiddleware(s.activitiesHandler.HandleList, "activities")))
	mux.HandleFunc("/activities/", RequestIDMiddleware(s.routeActivity))
}

// routeActivity dispatches the two path-parameterized operations:
//
//	POST   /activities/{name}/signup?email=...
//	DELETE /activities/{name}/participants/{email}
//
// Path segments arrive percent-decoded, so activity names with spaces
// resolve naturally.
func (s *Server) routeActivity(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")

	if name, ok := strings.CutSuffix(rest, "/signup"); ok && name != "" && !strings.Contains(name, "/") {
		MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			s.signupHandler.HandleSignup(w, r, name)
		}, "signup")(w, r)
		return
	}

	if name, email, ok := strings.Cut(rest, "/participants/"); ok && name != "" && email != "" && !strings.Contains(email, "/") {
		MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			s.unregisterHandler.HandleRemove(w, r, name, email)
		}, "unregister")(w, r)
		return
	}

	http.NotFound(w, r)
}

// messageResponse mirrors the success body of the mutation endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
