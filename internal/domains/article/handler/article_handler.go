package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/authz"
	"library-catalog/internal/domains/article/model"
	"library-catalog/internal/domains/article/service"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
)

type ArticleHandler struct {
	service service.Service
}

func NewArticleHandler(svc service.Service) *ArticleHandler {
	return &ArticleHandler{service: svc}
}

// List - GET /articles/
func (h *ArticleHandler) List(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceArticle, authz.ActionList); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	articles, err := h.service.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "failed to list articles", err)
		return
	}

	response.Success(c, http.StatusOK, "Success", articles)
}

// GetByID - GET /articles/:id/
func (h *ArticleHandler) GetByID(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceArticle, authz.ActionRetrieve); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	id, ok := h.articleID(c)
	if !ok {
		return
	}

	article, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.domainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", article)
}

// Create - POST /articles/create/
func (h *ArticleHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if d := authz.Decide(user, authz.ResourceArticle, authz.ActionCreate); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	var req model.CreateArticleRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		h.domainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Article created", created)
}

// Update - PUT/PATCH /articles/:id/edit/
func (h *ArticleHandler) Update(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceArticle, authz.ActionUpdate); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	id, ok := h.articleID(c)
	if !ok {
		return
	}

	var req model.UpdateArticleRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.domainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Article updated", updated)
}

// Delete - DELETE /articles/:id/delete/
func (h *ArticleHandler) Delete(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceArticle, authz.ActionDelete); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	id, ok := h.articleID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.domainError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *ArticleHandler) articleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, model.ErrArticleNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (h *ArticleHandler) domainError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationFailed(c, verrs)
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.serverError(c, "article operation failed", err)
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}

func (h *ArticleHandler) serverError(c *gin.Context, msg string, err error) {
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(msg)
	response.InternalServerError(c, "Internal server error")
}
