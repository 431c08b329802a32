package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/app/models/dto"
	"github.com/ogulcan/clotrack/internal/app/reporting"
	"github.com/ogulcan/clotrack/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, dto.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"revoked token", apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown role", apperrors.ErrUnknownRole, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"outcome transition", apperrors.ErrInvalidOutcomeTransition, http.StatusConflict, dto.ErrorCodeResourceInvalid},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"program in use", apperrors.ErrProgramHasRelations, http.StatusConflict, dto.ErrorCodeResourceInUse},
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"outcome not found", apperrors.ErrOutcomeNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unmapped error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := handleError(t, tc.err)
			assert.Equal(t, tc.status, w.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}

func TestHandleAPIError_WrappedSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("loading user"), apperrors.ErrUserNotFound)

	w, body := handleError(t, wrapped)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, body.Error.Code)
}

func TestHandleAPIError_ScopeErrorIsServerSide(t *testing.T) {
	err := &reporting.ScopeError{Role: models.RoleInstructor, Missing: "a user id"}

	w, body := handleError(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeReportFailed, body.Error.Code)
	assert.Contains(t, body.Error.Message, "user id")
}

func TestHandleAPIError_UnmappedDetailIsNotLeaked(t *testing.T) {
	_, body := handleError(t, errors.New("pq: password authentication failed"))
	require.NotNil(t, body.Error)
	assert.Equal(t, "Internal server error", body.Error.Message)
}
