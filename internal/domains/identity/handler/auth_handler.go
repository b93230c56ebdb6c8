package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/identity/model"
	"library-catalog/internal/domains/identity/service"
	"library-catalog/internal/shared/response"
)

type AuthHandler struct {
	service service.Service
}

func NewAuthHandler(svc service.Service) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register - POST /auth/register/
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			response.ErrorResponse(c, http.StatusConflict, "USERNAME_TAKEN", err.Error())
			return
		}
		h.serverError(c, "failed to register user", err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered", user.ToResponse())
}

// Login - POST /auth/login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
			return
		}
		h.serverError(c, "failed to log in user", err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", tokens)
}

func (h *AuthHandler) serverError(c *gin.Context, msg string, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationFailed(c, verrs)
		return
	}
	log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg(msg)
	response.InternalServerError(c, "Internal server error")
}
