package handler

import (
	"encoding/json"
	"net/http"

	"catalog-api/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Status line is already written, nothing useful to do on encode failure.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeDomainError maps a service error onto the HTTP status taxonomy:
// validation 400, not found 404, conflict 409, everything else 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	switch {
	case model.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error(), logger)
	case model.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), logger)
	case model.IsConflict(err):
		writeError(w, http.StatusConflict, err.Error(), logger)
	default:
		logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
	}
}
