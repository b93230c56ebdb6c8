package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// BookResponse is the wire representation of a book: all fields
// flattened, author referenced by id.
type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
	AuthorID        uuid.UUID `json:"author_id"`
}

func (b *Book) ToResponse() *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
	}
}

// CreateBookRequest - POST /books/create/
type CreateBookRequest struct {
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
	AuthorID        uuid.UUID `json:"author_id"`
}

// Validate enforces the domain invariants against the supplied current
// year. The year comes from the service's clock so tests stay
// deterministic.
func (r CreateBookRequest) Validate(currentYear int) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.PublicationYear,
			validation.Required,
			validation.Max(currentYear).Error("publication year cannot be greater than current year"),
		),
		validation.Field(&r.AuthorID, validation.Required),
	)
}

// UpdateBookRequest - PUT/PATCH /books/{id}/update/
// All fields optional for partial updates.
type UpdateBookRequest struct {
	Title           *string    `json:"title,omitempty"`
	PublicationYear *int       `json:"publication_year,omitempty"`
	AuthorID        *uuid.UUID `json:"author_id,omitempty"`
}

func (r UpdateBookRequest) Validate(currentYear int) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.PublicationYear,
			validation.Max(currentYear).Error("publication year cannot be greater than current year"),
		),
	)
}

// ApplyToEntity applies the non-nil fields to an existing book.
func (r *UpdateBookRequest) ApplyToEntity(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.PublicationYear != nil {
		b.PublicationYear = *r.PublicationYear
	}
	if r.AuthorID != nil {
		b.AuthorID = *r.AuthorID
	}
}
