// Package memory provides an in-process Entity Store. Books and
// authors share one lock, so the author-delete PROTECT check and the
// delete itself form a single critical section: a concurrent book
// create cannot slip between the count and the delete.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	authormodel "library-catalog/internal/domains/author/model"
	authorrepo "library-catalog/internal/domains/author/repository"
	bookmodel "library-catalog/internal/domains/book/model"
	bookrepo "library-catalog/internal/domains/book/repository"
)

// Store holds books and authors; slices preserve creation order.
type Store struct {
	mu      sync.RWMutex
	books   []bookmodel.Book
	authors []authormodel.Author
}

func NewStore() *Store {
	return &Store{}
}

// BookRepository returns the book-facing view of the store.
func (s *Store) BookRepository() bookrepo.Repository {
	return &bookStore{s}
}

// AuthorRepository returns the author-facing view of the store.
func (s *Store) AuthorRepository() authorrepo.Repository {
	return &authorStore{s}
}

// ---- books ----

type bookStore struct {
	store *Store
}

func (r *bookStore) Create(ctx context.Context, b *bookmodel.Book) (*bookmodel.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.authorExistsLocked(b.AuthorID) {
		return nil, bookmodel.ErrAuthorNotFound
	}

	now := time.Now()
	stored := bookmodel.Book{
		ID:              uuid.New(),
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.store.books = append(r.store.books, stored)

	out := stored
	return &out, nil
}

func (r *bookStore) GetByID(ctx context.Context, id uuid.UUID) (*bookmodel.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.books {
		if r.store.books[i].ID == id {
			out := r.store.books[i]
			return &out, nil
		}
	}
	return nil, bookmodel.ErrBookNotFound
}

func (r *bookStore) List(ctx context.Context, q *bookmodel.ListQuery) ([]bookmodel.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := []bookmodel.Book{}
	for i := range r.store.books {
		b := r.store.books[i]
		if q.Matches(&b, r.store.authorNameLocked(b.AuthorID)) {
			matched = append(matched, b)
		}
	}

	// Stable sort keeps creation order for equal keys.
	sort.SliceStable(matched, func(i, j int) bool {
		return q.Less(&matched[i], &matched[j])
	})
	return matched, nil
}

func (r *bookStore) Update(ctx context.Context, b *bookmodel.Book) (*bookmodel.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.authorExistsLocked(b.AuthorID) {
		return nil, bookmodel.ErrAuthorNotFound
	}

	for i := range r.store.books {
		if r.store.books[i].ID == b.ID {
			r.store.books[i].Title = b.Title
			r.store.books[i].PublicationYear = b.PublicationYear
			r.store.books[i].AuthorID = b.AuthorID
			r.store.books[i].UpdatedAt = time.Now()

			out := r.store.books[i]
			return &out, nil
		}
	}
	return nil, bookmodel.ErrBookNotFound
}

func (r *bookStore) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.books {
		if r.store.books[i].ID == id {
			r.store.books = append(r.store.books[:i], r.store.books[i+1:]...)
			return nil
		}
	}
	return bookmodel.ErrBookNotFound
}

func (r *bookStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]bookmodel.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	books := []bookmodel.Book{}
	for i := range r.store.books {
		if r.store.books[i].AuthorID == authorID {
			books = append(books, r.store.books[i])
		}
	}
	return books, nil
}

// ---- authors ----

type authorStore struct {
	store *Store
}

func (r *authorStore) Create(ctx context.Context, a *authormodel.Author) (*authormodel.Author, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	stored := authormodel.Author{
		ID:        uuid.New(),
		Name:      a.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.store.authors = append(r.store.authors, stored)

	out := stored
	return &out, nil
}

func (r *authorStore) GetByID(ctx context.Context, id uuid.UUID) (*authormodel.Author, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.authors {
		if r.store.authors[i].ID == id {
			out := r.store.authors[i]
			return &out, nil
		}
	}
	return nil, authormodel.ErrAuthorNotFound
}

func (r *authorStore) List(ctx context.Context) ([]authormodel.Author, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]authormodel.Author, len(r.store.authors))
	copy(out, r.store.authors)
	return out, nil
}

func (r *authorStore) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := -1
	for i := range r.store.authors {
		if r.store.authors[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return authormodel.ErrAuthorNotFound
	}

	// PROTECT: still inside the critical section that covers book creation.
	for i := range r.store.books {
		if r.store.books[i].AuthorID == id {
			return authormodel.ErrAuthorHasBooks
		}
	}

	r.store.authors = append(r.store.authors[:idx], r.store.authors[idx+1:]...)
	return nil
}

func (r *authorStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.authorExistsLocked(id), nil
}

// ---- shared helpers (caller holds the lock) ----

func (s *Store) authorExistsLocked(id uuid.UUID) bool {
	for i := range s.authors {
		if s.authors[i].ID == id {
			return true
		}
	}
	return false
}

func (s *Store) authorNameLocked(id uuid.UUID) string {
	for i := range s.authors {
		if s.authors[i].ID == id {
			return s.authors[i].Name
		}
	}
	return ""
}
