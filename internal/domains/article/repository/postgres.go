package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/article/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const articleColumns = "id, title, content, author_id, created_at, updated_at"

func (r *postgresRepository) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	query := `
        INSERT INTO articles (title, content, author_id)
        VALUES ($1, $2, $3)
        RETURNING ` + articleColumns

	var created model.Article
	err := r.pool.QueryRow(ctx, query, a.Title, a.Content, a.AuthorID).Scan(
		&created.ID,
		&created.Title,
		&created.Content,
		&created.AuthorID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	var a model.Article
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.AuthorID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article by id: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}
	return articles, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Article) (*model.Article, error) {
	query := `
        UPDATE articles
        SET title = $1, content = $2, updated_at = now()
        WHERE id = $3
        RETURNING ` + articleColumns

	var updated model.Article
	err := r.pool.QueryRow(ctx, query, a.Title, a.Content, a.ID).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Content,
		&updated.AuthorID,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrArticleNotFound
	}
	return nil
}
