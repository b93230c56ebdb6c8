package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ArticleResponse is the wire representation of an article.
type ArticleResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Article) ToResponse() *ArticleResponse {
	return &ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		AuthorID:  a.AuthorID,
		CreatedAt: a.CreatedAt,
	}
}

// CreateArticleRequest - POST /articles/create/
type CreateArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Content, validation.Required),
	)
}

// UpdateArticleRequest - PUT/PATCH /articles/{id}/edit/
type UpdateArticleRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Content, validation.NilOrNotEmpty),
	)
}

// ApplyToEntity applies the non-nil fields to an existing article.
func (r *UpdateArticleRequest) ApplyToEntity(a *Article) {
	if r.Title != nil {
		a.Title = *r.Title
	}
	if r.Content != nil {
		a.Content = *r.Content
	}
}
