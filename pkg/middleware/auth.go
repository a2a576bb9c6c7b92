package middleware

import (
	"net/http"
	"strings"

	"github.com/code-100-precent/LingChat/pkg/auth"
	"github.com/code-100-precent/LingChat/pkg/gateway"
	"github.com/gin-gonic/gin"
)

const (
	// ClaimsField is the gin context key the verified claims are stored under
	ClaimsField = "identity"
	// TokenHeader is the header the bearer token is read from
	TokenHeader = "Authorization"
	// TokenPrefix is the bearer token prefix
	TokenPrefix = "Bearer "
)

// AuthRequired verifies the identity token and stores the claims in the
// request context. Token sources in order: Authorization header, "token"
// query parameter, auth cookie.
func AuthRequired(manager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gateway.ReasonTokenRequired,
			})
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gateway.ReasonInvalidToken,
			})
			return
		}

		c.Set(ClaimsField, claims)
		c.Next()
	}
}

// CurrentClaims returns the verified claims stored by AuthRequired, or nil
// on an unauthenticated request.
func CurrentClaims(c *gin.Context) *auth.IdentityClaims {
	val, exists := c.Get(ClaimsField)
	if !exists {
		return nil
	}
	claims, _ := val.(*auth.IdentityClaims)
	return claims
}

// extractToken extracts the token from the request
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader(TokenHeader)
	if authHeader != "" {
		if strings.HasPrefix(authHeader, TokenPrefix) {
			return strings.TrimPrefix(authHeader, TokenPrefix)
		}
		return authHeader
	}

	if token := c.Query(gateway.TokenQueryParam); token != "" {
		return token
	}

	token, _ := c.Cookie(gateway.AuthCookieName)
	return token
}
