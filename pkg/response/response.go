// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/boxscore-tracker/internal/analysis"
	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/repository"
	"github.com/maxviazov/boxscore-tracker/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Extend here as new domain error categories emerge.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, service.ErrWrongScreen):
		return http.StatusConflict, ErrorPayload{Error: "wrong_screen", Message: err.Error()}
	case errors.Is(err, service.ErrEditInProgress):
		return http.StatusConflict, ErrorPayload{Error: "edit_in_progress", Message: err.Error()}
	case errors.Is(err, service.ErrNoEditSession):
		return http.StatusConflict, ErrorPayload{Error: "no_edit_session", Message: err.Error()}
	case errors.Is(err, analysis.ErrAnalysisInFlight):
		return http.StatusConflict, ErrorPayload{Error: "analysis_in_flight", Message: err.Error()}
	case errors.Is(err, boxscore.ErrCourtFull), errors.Is(err, boxscore.ErrAttemptsBelowMakes):
		return http.StatusUnprocessableEntity, ErrorPayload{Error: "rejected", Message: err.Error()}
	case errors.Is(err, service.ErrAnalysisDisabled):
		return http.StatusServiceUnavailable, ErrorPayload{Error: "analysis_disabled", Message: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
