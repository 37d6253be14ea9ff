package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/userbase/internal/ctxkeys"
	"github.com/templui/userbase/internal/repository"
	"github.com/templui/userbase/internal/service"
)

const maxBodyBytes = 1 << 20

// envelope is the body of every endpoint except the raw picture ones.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

var errMalformedBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// writeRawError is used by the endpoints that do not wrap their body.
func writeRawError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps a service error onto the envelope. Store and unexpected
// errors are logged and reported with the generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		// Validation failures answer 200 with success=false.
		writeFailure(w, http.StatusOK, err.Error())
	case errors.Is(err, errMalformedBody):
		writeFailure(w, http.StatusBadRequest, errMalformedBody.Error())
	case errors.Is(err, service.ErrEmailExists):
		writeFailure(w, http.StatusConflict, service.ErrEmailExists.Error())
	case errors.Is(err, service.ErrUsernameExists):
		writeFailure(w, http.StatusConflict, service.ErrUsernameExists.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, repository.ErrAccountNotFound):
		writeFailure(w, http.StatusNotFound, "user not found")
	case errors.Is(err, repository.ErrProfileNotFound):
		writeFailure(w, http.StatusNotFound, repository.ErrProfileNotFound.Error())
	default:
		slog.Error(message,
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", ctxkeys.RequestID(r.Context()),
		)
		writeFailure(w, http.StatusInternalServerError, message)
	}
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		slog.Debug("malformed request body", "path", r.URL.Path, "error", err)
		return errMalformedBody
	}
	return nil
}
