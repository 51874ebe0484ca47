// Package handlers contains the HTTP handlers for terramatch-engine.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/terramatch-studio/terramatch-engine/pkg/apperrors"
	"github.com/terramatch-studio/terramatch-engine/pkg/llm"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// aiErrorResponse maps an AI client failure onto the HTTP surface.
// Credential problems get their own code so the frontend can send the
// operator back to key selection; everything else is a generic upstream
// failure with no automatic retry.
func aiErrorResponse(w http.ResponseWriter, err error) error {
	if llm.IsCredentialError(err) {
		return ErrorResponse(w, http.StatusUnauthorized, "credential_unavailable",
			"No usable AI credential is configured. Select a valid API key and retry.")
	}
	return ErrorResponse(w, http.StatusBadGateway, "ai_call_failed",
		"The AI call failed. Check your connection and retry.")
}

// notFoundOrInternal writes 404 for missing entities and 500 otherwise.
func notFoundOrInternal(w http.ResponseWriter, err error, resource string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return ErrorResponse(w, http.StatusNotFound, "not_found", resource+" not found")
	}
	return ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to access "+resource)
}
