package model

import (
	"time"

	"github.com/google/uuid"
)

// Author owns zero or more books. The relation is one-to-many and
// PROTECT-style: an author with books cannot be deleted.
type Author struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
