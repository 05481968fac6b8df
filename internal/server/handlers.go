package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bitelog/bitelog/internal/models"
	"github.com/bitelog/bitelog/internal/service"
)

// writeServiceError maps service-layer errors onto the HTTP taxonomy:
// validation errors become a 400 with the offending fields, everything else
// is a storage failure reported as a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, codeValidation, "invalid request", vErr.Fields)
		return
	}
	writeError(w, http.StatusInternalServerError, codeStorage, "operation failed", nil)
}

func (s *Server) handleLogFood(w http.ResponseWriter, r *http.Request) {
	var req service.LogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadJSON, "request body must be valid JSON", nil)
		return
	}

	entry, err := s.svc.LogFood(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleLogText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string `json:"text"`
		UserID string `json:"user_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadJSON, "request body must be valid JSON", nil)
		return
	}

	entries, err := s.svc.LogText(r.Context(), req.Text, req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"entries": entries})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, codeValidation, "invalid request", []string{"limit"})
			return
		}
		limit = parsed
	}

	entries, err := s.svc.ListEntries(r.Context(), q.Get("date"), q.Get("user_id"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.FoodLogEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	summary, err := s.svc.DailySummary(r.Context(), q.Get("date"), q.Get("user_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.svc.Health(r.Context())

	// A degraded lookup provider never marks the service unhealthy; only
	// unreachable storage does.
	code := http.StatusOK
	if !status.Storage {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (s *Server) handleClearLogs(w http.ResponseWriter, r *http.Request) {
	count, err := s.svc.ClearEntries(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": count})
}
