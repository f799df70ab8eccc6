package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/newwork/workforce/internal/models"
	"github.com/newwork/workforce/internal/policy"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeDeny surfaces an authorization denial as a forbidden outcome. Denials
// are user-visible and never retried automatically.
func writeDeny(w http.ResponseWriter, d policy.Decision) {
	writeJSON(w, d, http.StatusForbidden)
}

// writeValidation surfaces a field-level precondition failure.
func writeValidation(w http.ResponseWriter, ve *models.ValidationError) {
	writeJSON(w, ve, http.StatusBadRequest)
}
