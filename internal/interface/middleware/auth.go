package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conduitapp/conduit-api/pkg/helpers"
	"github.com/conduitapp/conduit-api/pkg/response"
)

// CtxUserIDKey is the Gin context key holding the authenticated user id.
const CtxUserIDKey = "userID"

// tokenFromHeader extracts the JWT from "Authorization: Token <jwt>".
// The "Bearer" scheme is accepted as well for client compatibility.
func tokenFromHeader(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth requires a valid token and injects the user id into the context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, map[string][]string{
				"token": {"missing authorization token"},
			})
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, map[string][]string{
				"token": {"invalid authorization token"},
			})
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth injects the user id when a valid token is present and leaves
// the request anonymous otherwise. An invalid token is still rejected.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeader(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, map[string][]string{
				"token": {"invalid authorization token"},
			})
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id, empty for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
