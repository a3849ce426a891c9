// Package auth implements credential validation, identity resolution and
// the ownership access policy for the API.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user account.
type User struct {
	ID             uuid.UUID
	Email          string
	FullName       string
	HashedPassword string
	IsActive       bool
	IsSuperuser    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
