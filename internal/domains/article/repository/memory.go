package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-catalog/internal/domains/article/model"
)

// memoryRepository is an in-memory Repository used by tests. Articles are
// kept in a slice so List preserves creation order.
type memoryRepository struct {
	mu       sync.RWMutex
	articles []model.Article
}

func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, a *model.Article) (*model.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	created := *a
	created.ID = uuid.New()
	created.CreatedAt = now
	created.UpdatedAt = now
	r.articles = append(r.articles, created)

	out := created
	return &out, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.articles {
		if r.articles[i].ID == id {
			out := r.articles[i]
			return &out, nil
		}
	}
	return nil, model.ErrArticleNotFound
}

func (r *memoryRepository) List(_ context.Context) ([]model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Article, len(r.articles))
	copy(out, r.articles)
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, a *model.Article) (*model.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.articles {
		if r.articles[i].ID == a.ID {
			r.articles[i].Title = a.Title
			r.articles[i].Content = a.Content
			r.articles[i].UpdatedAt = time.Now()
			out := r.articles[i]
			return &out, nil
		}
	}
	return nil, model.ErrArticleNotFound
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.articles {
		if r.articles[i].ID == id {
			r.articles = append(r.articles[:i], r.articles[i+1:]...)
			return nil
		}
	}
	return model.ErrArticleNotFound
}
