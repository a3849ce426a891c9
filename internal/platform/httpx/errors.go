package httpx

import (
	"errors"
	"net/http"

	"github.com/atelier-hq/atelier/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
//
// ErrUserNotFound deliberately produces the same response as
// ErrInvalidCredentials: a valid-looking token whose subject no longer
// exists must be indistinguishable from a bad token to outside callers.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrUnauthenticated):
		Problem(w, http.StatusUnauthorized, "Not Authenticated", "Not authenticated")
	case errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrUserNotFound):
		Problem(w, http.StatusForbidden, "Invalid Credentials", "Could not validate credentials")
	case errors.Is(err, shared.ErrInactiveUser):
		Problem(w, http.StatusBadRequest, "Inactive User", "Inactive user")
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", "Not enough permissions")
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", "Resource not found")
	case errors.Is(err, shared.ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
