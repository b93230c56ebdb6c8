package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/book/model"
	"library-catalog/pkg/cache"
)

// postgresRepository implements Repository on pgxpool with a
// read-through cache for single-book lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 15 * time.Minute
)

const bookColumns = "id, title, publication_year, author_id, created_at, updated_at"

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, publication_year, author_id)
        VALUES ($1, $2, $3)
        RETURNING ` + bookColumns

	var created model.Book
	err := r.pool.QueryRow(ctx, query, b.Title, b.PublicationYear, b.AuthorID).Scan(
		&created.ID,
		&created.Title,
		&created.PublicationYear,
		&created.AuthorID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var b model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &b); err == nil && found {
		return &b, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.PublicationYear,
		&b.AuthorID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, &b, bookCacheTTL)
	return &b, nil
}

// List composes the SQL from the parsed query: filters AND together,
// the search clause ORs title against the joined author name, and the
// ordering column was whitelisted by the parser. created_at breaks ties
// so equal keys keep insertion order.
func (r *postgresRepository) List(ctx context.Context, q *model.ListQuery) ([]model.Book, error) {
	sql := `
        SELECT b.id, b.title, b.publication_year, b.author_id, b.created_at, b.updated_at
        FROM books b
        JOIN authors a ON a.id = b.author_id
        WHERE 1=1`
	args := []interface{}{}

	addArg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Title != nil {
		sql += " AND b.title = " + addArg(*q.Title)
	}
	if q.PublicationYear != nil {
		sql += " AND b.publication_year = " + addArg(*q.PublicationYear)
	}
	if q.AuthorID != nil {
		sql += " AND b.author_id = " + addArg(*q.AuthorID)
	}
	if q.Search != "" {
		pattern := addArg("%" + q.Search + "%")
		sql += " AND (b.title ILIKE " + pattern + " OR a.name ILIKE " + pattern + ")"
	}

	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	sql += fmt.Sprintf(" ORDER BY b.%s %s, b.created_at ASC", q.OrderBy, direction)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        UPDATE books
        SET title = $1, publication_year = $2, author_id = $3, updated_at = now()
        WHERE id = $4
        RETURNING ` + bookColumns

	var updated model.Book
	err := r.pool.QueryRow(ctx, query, b.Title, b.PublicationYear, b.AuthorID, b.ID).Scan(
		&updated.ID,
		&updated.Title,
		&updated.PublicationYear,
		&updated.AuthorID,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	_ = r.cache.Delete(ctx, bookCacheKeyPrefix+b.ID.String())
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	_ = r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())
	return nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE author_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by author: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

func scanBooks(rows pgx.Rows) ([]model.Book, error) {
	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.PublicationYear,
			&b.AuthorID,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}
	return books, nil
}
