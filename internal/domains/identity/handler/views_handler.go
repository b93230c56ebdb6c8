package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/authz"
	"library-catalog/internal/domains/identity/model"
	"library-catalog/internal/shared/middleware"
	"library-catalog/internal/shared/response"
)

// ViewsHandler serves the role-gated landing views. Each view admits
// exactly one derived role; group membership alone is not enough if a
// higher-precedence group shadows it.
type ViewsHandler struct{}

func NewViewsHandler() *ViewsHandler {
	return &ViewsHandler{}
}

// Admin - GET /views/admin/
func (h *ViewsHandler) Admin(c *gin.Context) {
	h.serve(c, model.RoleAdmin, "Welcome, Admin!")
}

// Librarian - GET /views/librarian/
func (h *ViewsHandler) Librarian(c *gin.Context) {
	h.serve(c, model.RoleLibrarian, "Welcome, Librarian!")
}

// Member - GET /views/member/
func (h *ViewsHandler) Member(c *gin.Context) {
	h.serve(c, model.RoleMember, "Welcome, Member!")
}

func (h *ViewsHandler) serve(c *gin.Context, required model.Role, message string) {
	user := middleware.CurrentUser(c)
	if d := authz.DecideView(user, required); !d.Allowed {
		response.Forbidden(c, d.Message())
		return
	}

	response.Success(c, http.StatusOK, message, gin.H{
		"role":     required,
		"username": user.Username,
	})
}
