// Package items implements owner-scoped item records.
package items

import (
	"time"

	"github.com/google/uuid"
)

// Item is a record owned by a single user.
type Item struct {
	ID          uuid.UUID
	Title       string
	Description string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
