package model

import (
	"time"

	"github.com/google/uuid"
)

// Article is the permission-gated resource family: unlike books, every
// operation on articles requires a specific permission codename.
type Article struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Title   string    `json:"title" db:"title"`
	Content string    `json:"content" db:"content"`

	// AuthorID references the user who created the article.
	AuthorID uuid.UUID `json:"author_id" db:"author_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
