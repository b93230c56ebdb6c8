package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/article/model"
	"library-catalog/internal/domains/article/repository"
	"library-catalog/internal/domains/article/service"
	identitymodel "library-catalog/internal/domains/identity/model"
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
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type fixture struct {
	router *gin.Engine
	svc    service.Service

	user *identitymodel.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{svc: service.NewService(repository.NewMemoryRepository())}
	h := NewArticleHandler(f.svc)

	f.router = gin.New()
	f.router.Use(func(c *gin.Context) {
		if f.user != nil {
			middleware.SetCurrentUser(c, f.user)
		}
		c.Next()
	})
	articles := f.router.Group("/articles")
	{
		articles.GET("/", h.List)
		articles.POST("/create/", h.Create)
		articles.GET("/:id/", h.GetByID)
		articles.PUT("/:id/edit/", h.Update)
		articles.PATCH("/:id/edit/", h.Update)
		articles.DELETE("/:id/delete/", h.Delete)
	}
	return f
}

func userWith(perms ...string) *identitymodel.User {
	return &identitymodel.User{ID: uuid.New(), Username: "staffer", Permissions: perms}
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

func (f *fixture) seed(t *testing.T, title string) *model.ArticleResponse {
	t.Helper()

	prev := f.user
	f.user = userWith(identitymodel.PermCanCreate)
	defer func() { f.user = prev }()

	w, env := f.do(t, http.MethodPost, "/articles/create/", model.CreateArticleRequest{
		Title:   title,
		Content: "Lorem ipsum.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := &model.ArticleResponse{}
	require.NoError(t, json.Unmarshal(env.Data, created))
	return created
}

func TestList_RequiresCanView(t *testing.T) {
	f := newFixture(t)

	// Anonymous.
	w, _ := f.do(t, http.MethodGet, "/articles/", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Authenticated, wrong codename.
	f.user = userWith(identitymodel.PermCanCreate)
	w, _ = f.do(t, http.MethodGet, "/articles/", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	f.user = userWith(identitymodel.PermCanView)
	w, env := f.do(t, http.MethodGet, "/articles/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var articles []model.ArticleResponse
	require.NoError(t, json.Unmarshal(env.Data, &articles))
	assert.Empty(t, articles)
}

func TestList_CreationOrder(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "First")
	f.seed(t, "Second")

	f.user = userWith(identitymodel.PermCanView)
	w, env := f.do(t, http.MethodGet, "/articles/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var articles []model.ArticleResponse
	require.NoError(t, json.Unmarshal(env.Data, &articles))
	require.Len(t, articles, 2)
	assert.Equal(t, "First", articles[0].Title)
	assert.Equal(t, "Second", articles[1].Title)
}

func TestCreate_RequiresCanCreate(t *testing.T) {
	f := newFixture(t)
	body := model.CreateArticleRequest{Title: "Draft", Content: "Text."}

	w, _ := f.do(t, http.MethodPost, "/articles/create/", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// can_view alone does not unlock creation.
	f.user = userWith(identitymodel.PermCanView)
	w, _ = f.do(t, http.MethodPost, "/articles/create/", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	author := userWith(identitymodel.PermCanCreate)
	f.user = author
	w, env := f.do(t, http.MethodPost, "/articles/create/", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.ArticleResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Draft", created.Title)

	// The article is attributed to the caller, not request input.
	assert.Equal(t, author.ID, created.AuthorID)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	f.user = userWith(identitymodel.PermCanCreate)

	w, env := f.do(t, http.MethodPost, "/articles/create/", model.CreateArticleRequest{Title: "No content"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestGetByID_RequiresCanView(t *testing.T) {
	f := newFixture(t)
	created := f.seed(t, "Readable")

	f.user = nil
	w, _ := f.do(t, http.MethodGet, fmt.Sprintf("/articles/%s/", created.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	f.user = userWith(identitymodel.PermCanView)
	w, env := f.do(t, http.MethodGet, fmt.Sprintf("/articles/%s/", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.ArticleResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Readable", got.Title)
}

func TestUpdate_RequiresCanEdit(t *testing.T) {
	f := newFixture(t)
	created := f.seed(t, "Original")
	title := "Edited"
	body := model.UpdateArticleRequest{Title: &title}

	// can_create does not imply can_edit.
	f.user = userWith(identitymodel.PermCanCreate)
	w, _ := f.do(t, http.MethodPatch, fmt.Sprintf("/articles/%s/edit/", created.ID), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	f.user = userWith(identitymodel.PermCanEdit)
	w, env := f.do(t, http.MethodPatch, fmt.Sprintf("/articles/%s/edit/", created.ID), body)
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.ArticleResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, "Lorem ipsum.", updated.Content)
}

func TestDelete_RequiresCanDelete(t *testing.T) {
	f := newFixture(t)
	created := f.seed(t, "Doomed")

	f.user = userWith(identitymodel.PermCanEdit)
	w, _ := f.do(t, http.MethodDelete, fmt.Sprintf("/articles/%s/delete/", created.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	f.user = userWith(identitymodel.PermCanDelete)
	w, _ = f.do(t, http.MethodDelete, fmt.Sprintf("/articles/%s/delete/", created.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	f.user = userWith(identitymodel.PermCanView)
	w, _ = f.do(t, http.MethodGet, fmt.Sprintf("/articles/%s/", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotFound(t *testing.T) {
	f := newFixture(t)
	f.user = userWith(identitymodel.PermCanView, identitymodel.PermCanDelete)

	w, env := f.do(t, http.MethodGet, fmt.Sprintf("/articles/%s/", uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ARTICLE_NOT_FOUND", env.Error.Code)

	w, _ = f.do(t, http.MethodDelete, fmt.Sprintf("/articles/%s/delete/", uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
