package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atelier-hq/atelier/internal/shared"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"unauthenticated", shared.ErrUnauthenticated, http.StatusUnauthorized, "Not authenticated"},
		{"invalid credentials", shared.ErrInvalidCredentials, http.StatusForbidden, "Could not validate credentials"},
		{"unknown subject", shared.ErrUserNotFound, http.StatusForbidden, "Could not validate credentials"},
		{"inactive", shared.ErrInactiveUser, http.StatusBadRequest, "Inactive user"},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, "Not enough permissions"},
		{"not found", shared.ErrNotFound, http.StatusNotFound, "Resource not found"},
		{"conflict", shared.ErrConflict, http.StatusConflict, "conflict"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := httptest.NewRecorder()
			RespondError(res, tc.err)
			assert.Equal(t, tc.wantStatus, res.Code)
			if tc.wantDetail != "" {
				assert.Contains(t, res.Body.String(), tc.wantDetail)
			}
			assert.Equal(t, "application/json", res.Header().Get("Content-Type"))
		})
	}
}

func TestWrappedErrorsStillMap(t *testing.T) {
	res := httptest.NewRecorder()
	RespondError(res, errors.Join(errors.New("email already exists"), shared.ErrConflict))
	assert.Equal(t, http.StatusConflict, res.Code)
}
