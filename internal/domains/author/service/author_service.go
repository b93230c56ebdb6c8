package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	bookmodel "library-catalog/internal/domains/book/model"
)

// BookLister fetches an author's books in creation order for the nested
// representation. Satisfied by book/repository.Repository.
type BookLister interface {
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]bookmodel.Book, error)
}

// Service defines business logic operations for the Author domain.
type Service interface {
	// Create persists a new author.
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)

	// List returns every author with its nested books in creation order.
	List(ctx context.Context) ([]*model.AuthorResponse, error)

	// GetByID returns one author with its nested books.
	// Errors: ErrAuthorNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error)

	// Delete removes an author; PROTECT semantics reject the delete
	// while any book references the author.
	// Errors: ErrAuthorNotFound, ErrAuthorHasBooks.
	Delete(ctx context.Context, id uuid.UUID) error
}

type authorService struct {
	repo  repository.Repository
	books BookLister
}

func NewService(repo repository.Repository, books BookLister) Service {
	return &authorService{repo: repo, books: books}
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Author{Name: req.Name})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("author_id", created.ID.String()).
		Str("name", created.Name).
		Msg("author created")
	return created, nil
}

func (s *authorService) List(ctx context.Context) ([]*model.AuthorResponse, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*model.AuthorResponse, 0, len(authors))
	for i := range authors {
		resp, err := s.serialize(ctx, &authors[i])
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.serialize(ctx, author)
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *authorService) serialize(ctx context.Context, a *model.Author) (*model.AuthorResponse, error) {
	books, err := s.books.ListByAuthor(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return a.ToResponse(books), nil
}
