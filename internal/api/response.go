package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"foundling/internal/apperror"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// writeAppError maps a service error onto an HTTP status. Every error is
// terminal for its request only; internal details are never exposed.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrDuplicateUser):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperror.ErrAuthentication):
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, apperror.ErrUnauthorized):
		jsonError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, apperror.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
