package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the uniform fault shape for API errors. Validation
// failures additionally carry the full set of field-level messages.
type errorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError sends a normalized {status, message} error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: status, Message: message})
}

// writeValidationError rejects a request with every failing field's message.
func writeValidationError(w http.ResponseWriter, messages []string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Errors:  messages,
	})
}
