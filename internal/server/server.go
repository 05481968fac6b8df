// Package server exposes the REST/JSON surface over the log service.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitelog/bitelog/internal/middleware"
	"github.com/bitelog/bitelog/internal/service"
)

// Server wires the HTTP routes to the log service.
type Server struct {
	svc *service.LogService
}

// New creates a Server over the given service.
func New(svc *service.LogService) *Server {
	return &Server{svc: svc}
}

// Handler returns the fully assembled handler: routes wrapped in the
// logging, CORS, and metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /food-log", s.handleLogFood)
	mux.HandleFunc("POST /food-log/text", s.handleLogText)
	mux.HandleFunc("GET /food-log", s.handleListEntries)
	mux.HandleFunc("GET /daily-summary", s.handleDailySummary)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /clear-logs", s.handleClearLogs)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Everything else is a JSON 404 instead of the default text response.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "unknown route", nil)
	})

	return middleware.Logging(middleware.CORS(middleware.Metrics(mux)))
}
