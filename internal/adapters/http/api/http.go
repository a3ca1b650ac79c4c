// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ssaa/navigator/internal/adapters/store"
	service "github.com/ssaa/navigator/internal/app"
	"github.com/ssaa/navigator/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the app service.
type Dependencies interface {
	// Dashboard assembles the GET /data payload.
	Dashboard(ctx context.Context) (types.DashboardData, error)

	// UpdateEvaluation updates the named fields on one evaluation row.
	UpdateEvaluation(ctx context.Context, id string, updates map[string]string) error

	// UpsertSetting updates or inserts one settings entry.
	UpsertSetting(ctx context.Context, key, value string) error

	// Snapshot appends one history row per current evaluation.
	Snapshot(ctx context.Context) (types.SnapshotResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	dataHandler   *DataHandler
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		dataHandler:   NewDataHandler(deps),
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/data", Middleware(s.dataHandler.HandleData, "data"))
	mux.HandleFunc("/healthz", Middleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", Middleware(s.statsHandler.HandleStats, "stats"))
}

// errorResponse is the wire shape of every failure: {"error": "..."}.
type errorResponse struct {
	Error string `json:"error"`
}

// postResponse acknowledges a successful POST /data.
type postResponse struct {
	Success  bool `json:"success"`
	Appended *int `json:"appended,omitempty"`
	Failed   *int `json:"failed,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor translates service and store errors to HTTP statuses. Failures
// are terminal per request; nothing here retries.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrRowNotFound), errors.Is(err, store.ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
