// Package users implements account management: registration, profile and
// password updates, and the administrative user CRUD.
package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user account row.
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
