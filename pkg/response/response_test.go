package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/boxscore-tracker/internal/analysis"
	"github.com/maxviazov/boxscore-tracker/internal/boxscore"
	"github.com/maxviazov/boxscore-tracker/internal/repository"
	"github.com/maxviazov/boxscore-tracker/internal/service"
	"github.com/maxviazov/boxscore-tracker/pkg/response"
)

func TestMapError(t *testing.T) {
	invalid := service.NewInvalidInputError([]service.FieldError{{Field: "home", Message: "must not be empty"}})

	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", invalid, 400, "invalid_input"},
		{"not_found", repository.ErrNotFound, 404, "not_found"},
		{"wrapped not_found", fmt.Errorf("open: %w", repository.ErrNotFound), 404, "not_found"},
		{"wrong_screen", service.ErrWrongScreen, 409, "wrong_screen"},
		{"edit_in_progress", service.ErrEditInProgress, 409, "edit_in_progress"},
		{"no_edit_session", service.ErrNoEditSession, 409, "no_edit_session"},
		{"analysis_in_flight", analysis.ErrAnalysisInFlight, 409, "analysis_in_flight"},
		{"court_full", boxscore.ErrCourtFull, 422, "rejected"},
		{"attempts_below_makes", boxscore.ErrAttemptsBelowMakes, 422, "rejected"},
		{"analysis_disabled", service.ErrAnalysisDisabled, 503, "analysis_disabled"},
		{"internal", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			if tc.wantErr == "invalid_input" {
				assert.NotEmpty(t, payload.FieldErrors)
			}
		})
	}
}

func TestWriteError_Aborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.WriteError(c, service.ErrWrongScreen)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"wrong_screen","message":"operation not allowed on the current screen"}`, w.Body.String())
}
