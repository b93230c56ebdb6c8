package service

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/domains/article/model"
	"library-catalog/internal/domains/article/repository"
)

// Service defines the interface for Article business logic.
type Service interface {
	// List returns all articles in creation order.
	List(ctx context.Context) ([]*model.ArticleResponse, error)

	// GetByID retrieves a single article.
	// Errors: ErrArticleNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.ArticleResponse, error)

	// Create validates and stores a new article authored by the given user.
	Create(ctx context.Context, authorID uuid.UUID, req *model.CreateArticleRequest) (*model.ArticleResponse, error)

	// Update applies a partial update to an existing article.
	// Errors: ErrArticleNotFound, validation errors.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateArticleRequest) (*model.ArticleResponse, error)

	// Delete removes an article.
	// Errors: ErrArticleNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

type articleService struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &articleService{repo: repo}
}

func (s *articleService) List(ctx context.Context) ([]*model.ArticleResponse, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.ArticleResponse, 0, len(articles))
	for i := range articles {
		responses = append(responses, articles[i].ToResponse())
	}
	return responses, nil
}

func (s *articleService) GetByID(ctx context.Context, id uuid.UUID) (*model.ArticleResponse, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return article.ToResponse(), nil
}

func (s *articleService) Create(ctx context.Context, authorID uuid.UUID, req *model.CreateArticleRequest) (*model.ArticleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	article := &model.Article{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}

	created, err := s.repo.Create(ctx, article)
	if err != nil {
		return nil, err
	}
	return created.ToResponse(), nil
}

func (s *articleService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateArticleRequest) (*model.ArticleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(article)

	updated, err := s.repo.Update(ctx, article)
	if err != nil {
		return nil, err
	}
	return updated.ToResponse(), nil
}

func (s *articleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
