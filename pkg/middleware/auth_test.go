package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/code-100-precent/LingChat/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	manager := auth.NewJWTManager(auth.DefaultJWTConfig("test-secret"))

	r := gin.New()
	r.GET("/protected", AuthRequired(manager), func(c *gin.Context) {
		claims := CurrentClaims(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"user": claims.UserID})
	})
	return r, manager
}

func TestAuthRequired_MissingToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, TokenPrefix+"not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthRequired_BearerHeader(t *testing.T) {
	r, manager := setupAuthRouter(t)
	token, err := manager.GenerateToken("u-alice", "Alice", "Liddell")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, TokenPrefix+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-alice")
}

func TestAuthRequired_QueryAndCookieFallback(t *testing.T) {
	r, manager := setupAuthRouter(t)
	token, err := manager.GenerateToken("u-bob", "Bob", "Marley")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "authToken", Value: token})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
