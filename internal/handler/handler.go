package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"boutika/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// writeJSON writes a JSON response with the given status code. The status is
// already on the wire by the time encoding can fail, so the failure is only
// logged.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

// writeError writes a coded error response with the given status.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service error onto an HTTP status and coded body.
// Unknown errors collapse to an opaque 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case model.ErrCodeProductNotFound:
			status = http.StatusNotFound
		case model.ErrCodeImageUploadError, model.ErrCodeInternalError:
			status = http.StatusInternalServerError
		}
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}
