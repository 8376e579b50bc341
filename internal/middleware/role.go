package middleware

import (
	"net/http"

	"courseportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the given roles.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Role not found in token")
			c.Abort()
			return
		}

		for _, a := range allowed {
			if role.(string) == a {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole("admin")
}

// StaffOnly allows instructors and admins.
func StaffOnly() gin.HandlerFunc {
	return RequireRole("instructor", "admin")
}
