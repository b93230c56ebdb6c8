package model

import (
	"time"

	"github.com/google/uuid"
)

// Book is the catalog entity. Every book references exactly one author;
// the reverse relation (an author's books) is assembled at serialization
// time and never stored on the author.
type Book struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	PublicationYear int       `json:"publication_year" db:"publication_year"`
	AuthorID        uuid.UUID `json:"author_id" db:"author_id"`

	// CreatedAt drives the insertion order of the nested books list.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
