package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"aihc/backend/internal/auth"
	"aihc/backend/internal/service/appointments"
	"aihc/backend/internal/service/doctors"
	"aihc/backend/internal/service/patients"
	"aihc/backend/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMissing(w http.ResponseWriter, fields []string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":   "validation",
		"missing": fields,
	})
}

// serviceError maps domain and store errors onto the HTTP surface. Conflict
// responses are produced by the submit handler directly; everything that ends
// up here is either a client mistake or an internal failure.
func (h *handlers) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var apptV *appointments.ValidationError
	var patV *patients.ValidationError
	var docV *doctors.ValidationError

	switch {
	case errors.As(err, &apptV):
		writeMissing(w, apptV.Fields)
	case errors.As(err, &patV):
		writeMissing(w, patV.Fields)
	case errors.As(err, &docV):
		writeMissing(w, docV.Fields)
	case errors.Is(err, store.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not found")
	case errors.Is(err, appointments.ErrOverrideNotFound):
		writeErr(w, http.StatusNotFound, "override not found")
	case errors.Is(err, auth.ErrBadCredentials):
		writeErr(w, http.StatusUnauthorized, "invalid credentials")
	default:
		h.log.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
