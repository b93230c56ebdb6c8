package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/authz"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
)

type BookHandler struct {
	service service.Service
}

func NewBookHandler(svc service.Service) *BookHandler {
	return &BookHandler{service: svc}
}

// List - GET /books/?title=&publication_year=&author=&search=&ordering=
func (h *BookHandler) List(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceBook, authz.ActionList); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	q, err := model.ParseListQuery(c.Request.URL.Query())
	if err != nil {
		response.ValidationFailed(c, err)
		return
	}

	books, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.serverError(c, "failed to list books", err)
		return
	}

	out := make([]*model.BookResponse, len(books))
	for i := range books {
		out[i] = books[i].ToResponse()
	}
	response.Success(c, http.StatusOK, "Success", out)
}

// GetByID - GET /books/:id/
func (h *BookHandler) GetByID(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceBook, authz.ActionRetrieve); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	id, ok := h.bookID(c)
	if !ok {
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.domainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Success", book.ToResponse())
}

// Create - POST /books/create/
func (h *BookHandler) Create(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceBook, authz.ActionCreate); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	var req model.CreateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.domainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Book created", created.ToResponse())
}

// Update - PUT/PATCH /books/:id/update/
func (h *BookHandler) Update(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceBook, authz.ActionUpdate); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	id, ok := h.bookID(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.domainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book updated", updated.ToResponse())
}

// Delete - DELETE /books/:id/delete/
func (h *BookHandler) Delete(c *gin.Context) {
	if d := authz.Decide(middleware.CurrentUser(c), authz.ResourceBook, authz.ActionDelete); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	id, ok := h.bookID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.domainError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *BookHandler) bookID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, model.ErrBookNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookHandler) domainError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationFailed(c, verrs)
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.serverError(c, "book operation failed", err)
		return
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), err.Error())
}

func (h *BookHandler) serverError(c *gin.Context, msg string, err error) {
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(msg)
	response.InternalServerError(c, "Internal server error")
}
