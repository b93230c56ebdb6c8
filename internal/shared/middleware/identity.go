package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/identity/model"
	"library-catalog/pkg/jwt"
)

const identityKey = "identity"

// UserLoader resolves a user id to a full identity with groups and
// permissions attached. Satisfied by identity/repository.Repository.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Identity resolves a Bearer token to a *model.User in the context.
// It never rejects: a missing, malformed or expired token just leaves
// the request anonymous. Denial is the permission gate's job, so open
// endpoints keep working without a token.
func Identity(tokens *jwt.Manager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Msg("rejected bearer token")
			c.Next()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			// Token outlived the account; treat as anonymous.
			log.Debug().Err(err).Str("user_id", claims.UserID).Msg("token user not found")
			c.Next()
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

// CurrentUser returns the resolved identity, or nil for anonymous callers.
func CurrentUser(c *gin.Context) *model.User {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	user, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// SetCurrentUser injects an identity directly; used by tests to bypass
// token plumbing.
func SetCurrentUser(c *gin.Context, user *model.User) {
	c.Set(identityKey, user)
}
