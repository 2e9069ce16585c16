package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/service"
)

// Context keys set by the auth middleware.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// Authenticate is a Gin middleware for JWT authentication of API requests.
// It resolves the caller's identity when an Authorization header is present
// and lets anonymous requests through; route-level guards decide whether
// anonymous access is acceptable. A malformed or invalid token is rejected
// outright.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(ContextRole, string(permissions.RoleAnonymous))
			c.Next()
			return
		}

		// Format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// Set user info in context for handlers to use
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// LoginRequired rejects anonymous requests. Must run after Authenticate.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentRole(c).Authenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin evaluates the admin policy for the request's method. Must run
// after LoginRequired.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !permissions.AdminAllowed(CurrentRole(c), ActionForMethod(c.Request.Method)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActionForMethod maps an HTTP method onto the policy action it implies.
func ActionForMethod(method string) permissions.Action {
	switch method {
	case http.MethodPost:
		return permissions.ActionCreate
	case http.MethodPut:
		return permissions.ActionUpdate
	case http.MethodPatch:
		return permissions.ActionPartialUpdate
	case http.MethodDelete:
		return permissions.ActionDestroy
	default:
		return permissions.ActionList
	}
}

// CurrentRole returns the acting role for the request, anonymous when no
// credentials were presented.
func CurrentRole(c *gin.Context) permissions.Role {
	role := c.GetString(ContextRole)
	if role == "" {
		return permissions.RoleAnonymous
	}
	return permissions.Role(role)
}

// CurrentUserID returns the authenticated user's id, empty for anonymous.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
