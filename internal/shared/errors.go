package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated indicates no credential supplied where one is required.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials indicates a malformed, unverifiable or expired credential.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound indicates a decoded token subject with no matching user.
	// The HTTP boundary collapses it into the same response as
	// ErrInvalidCredentials so outside callers cannot probe whether an
	// account ever existed.
	ErrUserNotFound = errors.New("user not found")
	// ErrInactiveUser indicates the account exists but has been deactivated.
	ErrInactiveUser = errors.New("inactive user")
	// ErrForbidden indicates a failed permission check.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("conflict")
)
