package repository

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/article/model"
)

// Repository defines the interface for Article data access operations.
type Repository interface {
	// Create inserts a new article.
	Create(ctx context.Context, article *model.Article) (*model.Article, error)

	// GetByID retrieves an article by id.
	// Errors: ErrArticleNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error)

	// List returns all articles in creation order.
	List(ctx context.Context) ([]model.Article, error)

	// Update persists changed fields of an existing article.
	// Errors: ErrArticleNotFound.
	Update(ctx context.Context, article *model.Article) (*model.Article, error)

	// Delete removes an article by id.
	// Errors: ErrArticleNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
