package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	identitymodel "library-catalog/internal/domains/identity/model"
	"library-catalog/internal/infrastructure/memory"
	"library-catalog/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

// fixture wires the handler against the in-memory store with the
// classic three-book catalog: two authors, three books.
type fixture struct {
	router *gin.Engine
	store  *memory.Store

	asimov *authormodel.Author
	clarke *authormodel.Author

	iRobot        *model.Book
	foundation    *model.Book
	childhoodsEnd *model.Book

	// user is injected into every request; nil means anonymous.
	user *identitymodel.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{store: memory.NewStore()}
	ctx := context.Background()

	var err error
	f.asimov, err = f.store.AuthorRepository().Create(ctx, &authormodel.Author{Name: "Isaac Asimov"})
	require.NoError(t, err)
	f.clarke, err = f.store.AuthorRepository().Create(ctx, &authormodel.Author{Name: "Arthur C. Clarke"})
	require.NoError(t, err)

	seed := func(title string, year int, author *authormodel.Author) *model.Book {
		b, err := f.store.BookRepository().Create(ctx, &model.Book{
			Title:           title,
			PublicationYear: year,
			AuthorID:        author.ID,
		})
		require.NoError(t, err)
		return b
	}
	f.iRobot = seed("I, Robot", 1950, f.asimov)
	f.foundation = seed("Foundation", 1951, f.asimov)
	f.childhoodsEnd = seed("Childhood's End", 1953, f.clarke)

	h := NewBookHandler(service.NewService(f.store.BookRepository(), f.store.AuthorRepository()))

	f.router = gin.New()
	f.router.Use(func(c *gin.Context) {
		if f.user != nil {
			middleware.SetCurrentUser(c, f.user)
		}
		c.Next()
	})
	books := f.router.Group("/books")
	{
		books.GET("/", h.List)
		books.POST("/create/", h.Create)
		books.GET("/:id/", h.GetByID)
		books.PUT("/:id/update/", h.Update)
		books.PATCH("/:id/update/", h.Update)
		books.DELETE("/:id/delete/", h.Delete)
	}
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	env := &envelope{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), env))
	}
	return w, env
}

func (f *fixture) listTitles(t *testing.T, query string) []string {
	t.Helper()

	w, env := f.do(t, http.MethodGet, "/books/"+query, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var books []model.BookResponse
	require.NoError(t, json.Unmarshal(env.Data, &books))

	titles := make([]string, len(books))
	for i := range books {
		titles[i] = books[i].Title
	}
	return titles
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	books, err := f.store.BookRepository().List(context.Background(), &model.ListQuery{OrderBy: model.OrderByTitle})
	require.NoError(t, err)
	return len(books)
}

func TestList_DefaultOrderIsTitleAscending(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t,
		[]string{"Childhood's End", "Foundation", "I, Robot"},
		f.listTitles(t, ""))
}

func TestList_OrderingParam(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t,
		[]string{"I, Robot", "Foundation", "Childhood's End"},
		f.listTitles(t, "?ordering=publication_year"))

	assert.Equal(t,
		[]string{"Childhood's End", "Foundation", "I, Robot"},
		f.listTitles(t, "?ordering=-publication_year"))

	assert.Equal(t,
		[]string{"I, Robot", "Foundation", "Childhood's End"},
		f.listTitles(t, "?ordering=-title"))
}

func TestList_UnknownOrderingFieldIs400(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, http.MethodGet, "/books/?ordering=id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "ordering")
}

func TestList_Filters(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"Foundation"}, f.listTitles(t, "?title=Foundation"))

	// Exact match, not substring.
	assert.Empty(t, f.listTitles(t, "?title=Founda"))

	assert.Equal(t, []string{"Childhood's End"}, f.listTitles(t, "?publication_year=1953"))

	assert.Equal(t,
		[]string{"Foundation", "I, Robot"},
		f.listTitles(t, fmt.Sprintf("?author=%s", f.asimov.ID)))
}

func TestList_Search(t *testing.T) {
	f := newFixture(t)

	// Hits the title, case-insensitively.
	assert.Equal(t, []string{"I, Robot"}, f.listTitles(t, "?search=ROBOT"))

	// Hits the author name.
	assert.Equal(t, []string{"Childhood's End"}, f.listTitles(t, "?search=clarke"))

	// Filters are ANDed with the search.
	assert.Equal(t,
		[]string{"Foundation"},
		f.listTitles(t, fmt.Sprintf("?author=%s&search=found", f.asimov.ID)))

	assert.Empty(t, f.listTitles(t, "?search=dune"))
}

func TestList_MalformedFilters(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, http.MethodGet, "/books/?publication_year=soon", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error.Details, "publication_year")

	w, env = f.do(t, http.MethodGet, "/books/?author=42", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error.Details, "author")
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)

	w, env := f.do(t, http.MethodGet, fmt.Sprintf("/books/%s/", f.foundation.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var book model.BookResponse
	require.NoError(t, json.Unmarshal(env.Data, &book))
	assert.Equal(t, "Foundation", book.Title)
	assert.Equal(t, 1951, book.PublicationYear)
	assert.Equal(t, f.asimov.ID, book.AuthorID)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	w, _ := f.do(t, http.MethodGet, "/books/7f3d97ce-9a2f-4a39-8f9e-000000000000/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A non-uuid id is indistinguishable from a missing book.
	w, _ = f.do(t, http.MethodGet, "/books/not-a-uuid/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMutations_AnonymousGets403(t *testing.T) {
	f := newFixture(t)
	before := f.count(t)

	w, env := f.do(t, http.MethodPost, "/books/create/", model.CreateBookRequest{
		Title:           "The Caves of Steel",
		PublicationYear: 1954,
		AuthorID:        f.asimov.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	title := "Renamed"
	w, _ = f.do(t, http.MethodPatch, fmt.Sprintf("/books/%s/update/", f.iRobot.ID), model.UpdateBookRequest{Title: &title})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = f.do(t, http.MethodDelete, fmt.Sprintf("/books/%s/delete/", f.iRobot.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Nothing changed behind the denials.
	assert.Equal(t, before, f.count(t))
	kept, err := f.store.BookRepository().GetByID(context.Background(), f.iRobot.ID)
	require.NoError(t, err)
	assert.Equal(t, "I, Robot", kept.Title)
}

func TestCreate_Authenticated(t *testing.T) {
	f := newFixture(t)
	f.user = &identitymodel.User{Username: "librarian"}
	before := f.count(t)

	w, env := f.do(t, http.MethodPost, "/books/create/", model.CreateBookRequest{
		Title:           "The Caves of Steel",
		PublicationYear: 1954,
		AuthorID:        f.asimov.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.BookResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "The Caves of Steel", created.Title)
	assert.Equal(t, before+1, f.count(t))
}

func TestCreate_FutureYearRejected(t *testing.T) {
	f := newFixture(t)
	f.user = &identitymodel.User{Username: "librarian"}

	w, env := f.do(t, http.MethodPost, "/books/create/", model.CreateBookRequest{
		Title:           "Not Yet Written",
		PublicationYear: 3000,
		AuthorID:        f.asimov.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "publication_year")
}

func TestCreate_UnknownAuthorIs404(t *testing.T) {
	f := newFixture(t)
	f.user = &identitymodel.User{Username: "librarian"}

	w, env := f.do(t, http.MethodPost, "/books/create/", model.CreateBookRequest{
		Title:           "Orphan",
		PublicationYear: 1990,
		AuthorID:        uuid.New(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "AUTHOR_NOT_FOUND", env.Error.Code)
}

func TestUpdate_Authenticated(t *testing.T) {
	f := newFixture(t)
	f.user = &identitymodel.User{Username: "librarian"}

	year := 1952
	w, env := f.do(t, http.MethodPatch, fmt.Sprintf("/books/%s/update/", f.foundation.ID), model.UpdateBookRequest{
		PublicationYear: &year,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.BookResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Foundation", updated.Title)
	assert.Equal(t, 1952, updated.PublicationYear)
}

func TestDelete_Authenticated(t *testing.T) {
	f := newFixture(t)
	f.user = &identitymodel.User{Username: "librarian"}

	w, _ := f.do(t, http.MethodDelete, fmt.Sprintf("/books/%s/delete/", f.iRobot.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())

	w, _ = f.do(t, http.MethodGet, fmt.Sprintf("/books/%s/", f.iRobot.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
