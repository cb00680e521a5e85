package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/worklog/internal/core/port"
	"github.com/pkg/errors"
)

func encode(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	if err := encoder.Encode(payload); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(errors.WithStack(err)))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleError translates the core's typed failures into transport
// status codes. Every rejected transition names the violated invariant
// so the client can decide whether a retry makes sense.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, port.ErrNotFound):
		encode(w, r, http.StatusNotFound, errorResponse{Error: "not found"})

	case errors.Is(err, port.ErrModuleClosed):
		encode(w, r, http.StatusConflict, errorResponse{Error: "module closed"})

	case errors.Is(err, port.ErrAlreadyCompleted):
		encode(w, r, http.StatusConflict, errorResponse{Error: "task already completed"})

	case errors.Is(err, port.ErrNotToday):
		encode(w, r, http.StatusUnprocessableEntity, errorResponse{Error: "task is not anchored to the current day"})

	case errors.Is(err, port.ErrInvalidDateRange):
		encode(w, r, http.StatusBadRequest, errorResponse{Error: "start date/time must precede finish date/time"})

	default:
		slog.ErrorContext(ctx, "unexpected error", slogx.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
