package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/ravenlog/pkg/choice"
	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	"github.com/jwebster45206/ravenlog/pkg/resolve"
	"github.com/jwebster45206/ravenlog/pkg/session"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gamelog.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, gamelog.ErrUnknownKind),
		errors.Is(err, resolve.ErrUnresolved),
		errors.Is(err, choice.ErrInvalidTarget),
		errors.Is(err, entity.ErrNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, choice.ErrNotInControl):
		return http.StatusForbidden
	case errors.Is(err, choice.ErrClosed):
		return http.StatusConflict
	case errors.Is(err, session.ErrNoPendingChoice):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

// writeDomainError reports err with the status statusFor picks. Server-side
// failures are logged and their detail is not sent to the client.
func writeDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		writeError(w, logger, status, "Internal server error")
		return
	}
	logger.Warn("Request rejected", "status", status, "error", err)
	writeError(w, logger, status, err.Error())
}
