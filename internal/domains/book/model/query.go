package model

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Ordering fields accepted on /books/. Anything else is a 400, not a
// silent fallback.
const (
	OrderByTitle           = "title"
	OrderByPublicationYear = "publication_year"
)

// ListQuery is the composed query over the book collection: exact-match
// filters (ANDed), an optional case-insensitive search (title OR author
// name), and a sort comparator.
type ListQuery struct {
	Title           *string
	PublicationYear *int
	AuthorID        *uuid.UUID

	Search string

	OrderBy    string
	Descending bool
}

// ParseListQuery builds a ListQuery from the raw query string. Any
// malformed parameter yields validation.Errors keyed by the offending
// parameter; unrecognized parameters are ignored.
func ParseListQuery(values url.Values) (*ListQuery, error) {
	q := &ListQuery{OrderBy: OrderByTitle}
	errs := validation.Errors{}

	if v := values.Get("title"); v != "" {
		q.Title = &v
	}

	if v := values.Get("publication_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			errs["publication_year"] = errors.New("must be an integer")
		} else {
			q.PublicationYear = &year
		}
	}

	if v := values.Get("author"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs["author"] = errors.New("must be a valid author id")
		} else {
			q.AuthorID = &id
		}
	}

	q.Search = values.Get("search")

	if v := values.Get("ordering"); v != "" {
		field := strings.TrimPrefix(v, "-")
		switch field {
		case OrderByTitle, OrderByPublicationYear:
			q.OrderBy = field
			q.Descending = strings.HasPrefix(v, "-")
		default:
			errs["ordering"] = fmt.Errorf("unknown ordering field %q", field)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return q, nil
}

// Matches reports whether a book satisfies the composed predicate.
// authorName is the name of the book's author, needed by the search
// predicate only.
func (q *ListQuery) Matches(b *Book, authorName string) bool {
	if q.Title != nil && b.Title != *q.Title {
		return false
	}
	if q.PublicationYear != nil && b.PublicationYear != *q.PublicationYear {
		return false
	}
	if q.AuthorID != nil && b.AuthorID != *q.AuthorID {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(authorName), needle) {
			return false
		}
	}
	return true
}

// Less is the sort comparator for the surviving set. Ties keep their
// relative order when used with a stable sort.
func (q *ListQuery) Less(a, b *Book) bool {
	var less bool
	switch q.OrderBy {
	case OrderByPublicationYear:
		if a.PublicationYear == b.PublicationYear {
			return false
		}
		less = a.PublicationYear < b.PublicationYear
	default:
		if a.Title == b.Title {
			return false
		}
		less = a.Title < b.Title
	}
	if q.Descending {
		return !less
	}
	return less
}
