package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"unicare/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestHandler() *Handler {
	return &Handler{jwtSecret: []byte("test-secret")}
}

func TestJWTRoundTrip(t *testing.T) {
	h := newTestHandler()

	token, err := h.generateJWT("user-1", models.RoleCounselor)
	assert.NoError(t, err)

	actor, err := h.validateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", actor.ID)
	assert.Equal(t, models.RoleCounselor, actor.Role)
}

func TestValidateJWTRejectsForeignToken(t *testing.T) {
	h := newTestHandler()
	other := &Handler{jwtSecret: []byte("different-secret")}

	token, err := other.generateJWT("user-1", models.RoleStudent)
	assert.NoError(t, err)

	_, err = h.validateJWT(token)
	assert.Error(t, err)

	_, err = h.validateJWT("not-a-token")
	assert.Error(t, err)
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler()

	r := gin.New()
	r.GET("/protected", h.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": actorFrom(c).ID})
	})

	// No token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed header.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token reaches the handler with the actor set.
	token, _ := h.generateJWT("user-1", models.RoleStudent)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}
