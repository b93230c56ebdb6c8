package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/authz"
	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
)

type AuthorHandler struct {
	service service.Service
}

func NewAuthorHandler(svc service.Service) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// List - GET /authors/
// Every author carries its nested books list in creation order.
func (h *AuthorHandler) List(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceBook, authz.ActionList); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "failed to list authors", err)
		return
	}

	response.Success(c, http.StatusOK, "Success", authors)
}

// GetByID - GET /authors/:id/
func (h *AuthorHandler) GetByID(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceBook, authz.ActionRetrieve); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	id, ok := h.authorID(c)
	if !ok {
		return
	}

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.domainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", author)
}

// Create - POST /authors/create/
// Author mutations use the same coarse authenticated check as books.
func (h *AuthorHandler) Create(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceBook, authz.ActionCreate); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	var req model.CreateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.domainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Author created", created.ToResponse(nil))
}

// Delete - DELETE /authors/:id/delete/
// PROTECT semantics: 409 while any book still references the author.
func (h *AuthorHandler) Delete(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceBook, authz.ActionDelete); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	id, ok := h.authorID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.domainError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *AuthorHandler) authorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, model.ErrAuthorNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (h *AuthorHandler) domainError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationFailed(c, verrs)
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.serverError(c, "author operation failed", err)
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}

func (h *AuthorHandler) serverError(c *gin.Context, msg string, err error) {
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(msg)
	response.InternalServerError(c, "Internal server error")
}
