package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"docuchat/internal/app"
)

const maxJSONBody = 1 << 20

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"status": "error", "message": msg})
}

func writeBlocked(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusForbidden, map[string]any{
		"status":  "error",
		"message": msg,
		"blocked": true,
	})
}

// writeAppError maps the app error taxonomy onto HTTP statuses. Anything
// unexpected is a storage-level failure and surfaces as an opaque 500.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrUserBlocked):
		writeBlocked(w, err.Error())
	case errors.Is(err, app.ErrAccountBlocked):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials),
		errors.Is(err, app.ErrInvalidAdminCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, app.ErrUserNotFound),
		errors.Is(err, app.ErrSessionNotFound),
		errors.Is(err, app.ErrDocumentNotFound),
		errors.Is(err, app.ErrNoFileData):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrEmailAndPasswordRequired),
		errors.Is(err, app.ErrInvalidEmail),
		errors.Is(err, app.ErrEmailAlreadyRegistered),
		errors.Is(err, app.ErrUsernameAndPasswordRequired),
		errors.Is(err, app.ErrAllFieldsRequired),
		errors.Is(err, app.ErrCurrentPasswordIncorrect),
		errors.Is(err, app.ErrEmailRequired),
		errors.Is(err, app.ErrUserEmailRequired),
		errors.Is(err, app.ErrRoleAndContentRequired),
		errors.Is(err, app.ErrInvalidRole),
		errors.Is(err, app.ErrNoFileProvided),
		errors.Is(err, app.ErrNoFileSelected):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "An error occurred. Please try again.")
	}
}
