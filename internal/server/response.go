package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Machine-readable error codes returned to clients.
const (
	codeValidation = "VALIDATION_ERROR"
	codeBadJSON    = "INVALID_JSON"
	codeStorage    = "STORAGE_ERROR"
	codeNotFound   = "NOT_FOUND"
)

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string, fields []string) {
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    code,
		Message: message,
		Fields:  fields,
	}})
}
