package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
)

// Repository defines the interface for Author data access operations.
type Repository interface {
	// Create inserts a new author.
	Create(ctx context.Context, author *model.Author) (*model.Author, error)

	// GetByID retrieves an author by id.
	// Errors: ErrAuthorNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// List returns all authors in creation order.
	List(ctx context.Context) ([]model.Author, error)

	// Delete removes an author, enforcing PROTECT semantics: the check
	// for referencing books and the delete run under a consistency
	// guarantee equivalent to a transaction, so a book inserted
	// concurrently cannot slip between the check and the delete.
	// Errors: ErrAuthorNotFound, ErrAuthorHasBooks.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks whether an author exists, for validating book
	// references without fetching the full row.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
