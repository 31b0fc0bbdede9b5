package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
	"github.com/minesafe-lab/minesafe/pkg/utils/errutil"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// handleError maps use case errors to HTTP status codes. Anything not
// covered by a sentinel is an internal error.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, usecase.ErrIncidentNotFound),
		errors.Is(err, usecase.ErrChecklistNotFound),
		errors.Is(err, usecase.ErrItemNotFound),
		errors.Is(err, usecase.ErrAlertNotFound),
		errors.Is(err, usecase.ErrReportNotFound):
		status = http.StatusNotFound

	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrActorMissing):
		status = http.StatusBadRequest

	case errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrIncidentNotClosed),
		errors.Is(err, usecase.ErrAlertResolved):
		status = http.StatusConflict

	default:
		status = http.StatusInternalServerError
	}

	errutil.HandleHTTP(ctx, w, err, status)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(usecase.ErrInvalidInput, "invalid request body", goerr.V("cause", err.Error()))
	}
	return nil
}
