package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/logging"
)

// errorResponse is the error wire format. FormErrors is only present on
// validation failures.
type errorResponse struct {
	StatusCode int               `json:"statusCode"`
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	FormErrors map[string]string `json:"formErrors,omitempty"`
}

// respondError translates the application error taxonomy into HTTP statuses
// and the shared error envelope. Unclassified errors become opaque 500s; the
// underlying cause is only logged.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong! Please try again."
	var formErrors map[string]string

	var notFound *apperr.NotFoundError
	var unauthorized *apperr.UnauthorizedError
	var invalid *apperr.InvalidRequestError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		message = notFound.Error()
	case errors.As(err, &unauthorized):
		status = http.StatusUnauthorized
		message = unauthorized.Error()
	case errors.As(err, &invalid):
		status = http.StatusBadRequest
		message = invalid.Error()
	default:
		if ve, ok := apperr.AsValidation(err); ok {
			status = http.StatusUnprocessableEntity
			message = "Validation failed"
			formErrors = ve.Fields
		}
	}

	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("method", r.Method),
			slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(errorResponse{
		StatusCode: status,
		Success:    false,
		Message:    message,
		FormErrors: formErrors,
	}); encodeErr != nil {
		slog.Error("json encode failed", slog.String("error", encodeErr.Error()))
	}
}
