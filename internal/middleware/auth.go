package middleware

import (
	"net/http"
	"strings"

	jwtsvc "courseportal/internal/pkg/jwt"
	"courseportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAuth validates the bearer session token on every protected request
// and attaches the caller's identity to the gin context. Failures are always
// a hard 401; requests never degrade to anonymous access.
func RequireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abortUnauthenticated(c, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			abortUnauthenticated(c, "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			abortUnauthenticated(c, "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			abortUnauthenticated(c, "Invalid or expired token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, message string) {
	response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", message)
	c.Abort()
}
