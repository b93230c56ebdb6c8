package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
)

// Repository defines the interface for Book data access operations.
// Implementations must make each mutation atomic; composed invariants
// (author existence, PROTECT on author delete) are enforced by the
// services and the author repository.
type Repository interface {
	// Create inserts a new book.
	Create(ctx context.Context, book *model.Book) (*model.Book, error)

	// GetByID retrieves a book by id.
	// Errors: ErrBookNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// List returns the books satisfying the composed query, already
	// sorted by its comparator. An empty result is not an error.
	List(ctx context.Context, q *model.ListQuery) ([]model.Book, error)

	// Update persists changed fields of an existing book.
	// Errors: ErrBookNotFound.
	Update(ctx context.Context, book *model.Book) (*model.Book, error)

	// Delete removes a book by id.
	// Errors: ErrBookNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByAuthor returns an author's books in creation order, for the
	// nested list on author representations.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)
}
