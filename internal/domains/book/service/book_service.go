package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
)

// AuthorChecker resolves whether a referenced author exists. Satisfied
// by author/repository.Repository.
type AuthorChecker interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service defines business logic operations for the Book domain.
type Service interface {
	// List returns the books matching a parsed query, sorted by its
	// comparator. An empty result is valid.
	List(ctx context.Context, q *model.ListQuery) ([]model.Book, error)

	// GetByID retrieves one book.
	// Errors: ErrBookNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// Create validates and persists a new book.
	// Business rules:
	// - publication_year must not exceed the current calendar year
	// - author_id must reference an existing author
	// Errors: validation.Errors, ErrAuthorNotFound.
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)

	// Update applies a partial update to an existing book under the
	// same rules as Create.
	// Errors: validation.Errors, ErrBookNotFound, ErrAuthorNotFound.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.Book, error)

	// Delete removes a book.
	// Errors: ErrBookNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookService struct {
	repo    repository.Repository
	authors AuthorChecker
	now     func() time.Time
}

func NewService(repo repository.Repository, authors AuthorChecker) Service {
	return NewServiceWithClock(repo, authors, time.Now)
}

// NewServiceWithClock injects the clock the publication-year rule is
// evaluated against, so tests can pin the current year.
func NewServiceWithClock(repo repository.Repository, authors AuthorChecker, now func() time.Time) Service {
	return &bookService{repo: repo, authors: authors, now: now}
}

func (s *bookService) List(ctx context.Context, q *model.ListQuery) ([]model.Book, error) {
	return s.repo.List(ctx, q)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(s.now().Year()); err != nil {
		return nil, err
	}

	if err := s.checkAuthor(ctx, req.AuthorID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("book_id", created.ID.String()).
		Str("title", created.Title).
		Msg("book created")
	return created, nil
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.Book, error) {
	if err := req.Validate(s.now().Year()); err != nil {
		return nil, err
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(book)

	if req.AuthorID != nil {
		if err := s.checkAuthor(ctx, *req.AuthorID); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, book)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *bookService) checkAuthor(ctx context.Context, id uuid.UUID) error {
	exists, err := s.authors.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrAuthorNotFound
	}
	return nil
}
