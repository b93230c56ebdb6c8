package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookmodel "library-catalog/internal/domains/book/model"
)

// AuthorResponse is the wire representation of an author. Books is the
// read-only nested list of the author's books in creation order; it is
// never accepted as input (the create request has no books field, so
// clients writing through it are ignored).
type AuthorResponse struct {
	ID    uuid.UUID                 `json:"id"`
	Name  string                    `json:"name"`
	Books []*bookmodel.BookResponse `json:"books"`
}

// ToResponse builds the representation from the author and its books,
// which the caller fetched in creation order.
func (a *Author) ToResponse(books []bookmodel.Book) *AuthorResponse {
	nested := make([]*bookmodel.BookResponse, len(books))
	for i := range books {
		nested[i] = books[i].ToResponse()
	}
	return &AuthorResponse{
		ID:    a.ID,
		Name:  a.Name,
		Books: nested,
	}
}

// CreateAuthorRequest - POST /authors/create/
type CreateAuthorRequest struct {
	Name string `json:"name"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}
