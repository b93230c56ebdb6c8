package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/identity/model"
	"library-catalog/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubLoader struct {
	users map[uuid.UUID]*model.User
}

func (s *stubLoader) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func identityProbe(tokens *jwt.Manager, loader *stubLoader) *gin.Engine {
	r := gin.New()
	r.Use(Identity(tokens, loader))
	r.GET("/whoami", func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return r
}

func whoami(r *gin.Engine, authorization string) string {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w.Body.String()
}

func TestIdentity_ResolvesValidToken(t *testing.T) {
	tokens := jwt.NewManager("test-secret", 15*time.Minute, time.Hour)
	alice := &model.User{ID: uuid.New(), Username: "alice"}
	r := identityProbe(tokens, &stubLoader{users: map[uuid.UUID]*model.User{alice.ID: alice}})

	access, err := tokens.GenerateAccessToken(alice.ID.String(), alice.Username)
	require.NoError(t, err)

	assert.Equal(t, "alice", whoami(r, "Bearer "+access))
}

// The middleware never rejects; every failure mode falls back to an
// anonymous request and leaves denial to the permission gate.
func TestIdentity_FailuresFallBackToAnonymous(t *testing.T) {
	tokens := jwt.NewManager("test-secret", 15*time.Minute, time.Hour)
	alice := &model.User{ID: uuid.New(), Username: "alice"}
	loader := &stubLoader{users: map[uuid.UUID]*model.User{alice.ID: alice}}
	r := identityProbe(tokens, loader)

	// No header.
	assert.Equal(t, "anonymous", whoami(r, ""))

	// Malformed header.
	assert.Equal(t, "anonymous", whoami(r, "Token abc"))
	assert.Equal(t, "anonymous", whoami(r, "Bearer"))

	// Garbage token.
	assert.Equal(t, "anonymous", whoami(r, "Bearer not.a.jwt"))

	// Token signed with a different secret.
	other := jwt.NewManager("other-secret", 15*time.Minute, time.Hour)
	forged, err := other.GenerateAccessToken(alice.ID.String(), alice.Username)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", whoami(r, "Bearer "+forged))

	// Refresh token in the access slot.
	refresh, err := tokens.GenerateRefreshToken(alice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "anonymous", whoami(r, "Bearer "+refresh))

	// Valid token for a deleted account.
	ghost, err := tokens.GenerateAccessToken(uuid.NewString(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, "anonymous", whoami(r, "Bearer "+ghost))
}

func TestIdentity_ExpiredToken(t *testing.T) {
	expired := jwt.NewManager("test-secret", -time.Minute, time.Hour)
	alice := &model.User{ID: uuid.New(), Username: "alice"}
	r := identityProbe(expired, &stubLoader{users: map[uuid.UUID]*model.User{alice.ID: alice}})

	access, err := expired.GenerateAccessToken(alice.ID.String(), alice.Username)
	require.NoError(t, err)

	assert.Equal(t, "anonymous", whoami(r, "Bearer "+access))
}
