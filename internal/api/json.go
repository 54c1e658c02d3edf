package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/uruz/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// writeData writes the standard success envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataResponse{Success: true, Data: data})
}

// writePage writes a success envelope with pagination metadata.
func writePage(w http.ResponseWriter, data any, p Pagination) {
	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: data, Pagination: &p})
}

// writeError writes the standard failure envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResponse{Error: msg})
}

// writeServiceError maps a service error onto the failure taxonomy: field
// validation and malformed ids are client errors, unknown ids are 404,
// duplicate keys 409, an unreachable store 503, everything else 500.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	var fes apperr.FieldErrors
	switch {
	case errors.As(err, &fes):
		writeJSON(w, http.StatusBadRequest, errResponse{Error: "validation failed", Errors: fes})
	case errors.Is(err, apperr.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "invalid id")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrDuplicate):
		writeError(w, http.StatusConflict, "duplicate key")
	case errors.Is(err, apperr.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
