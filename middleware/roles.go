package middleware

import (
	"net/http"

	"github.com/fundarhq/fundar/backend/models"
	"github.com/fundarhq/fundar/backend/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequireRole allows the request through when the principal's role is in the
// allowed set. A valid principal with the wrong role gets 403, never 401.
// Must run after BearerTokenAuth.
func RequireRole(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}
		for _, role := range allowedRoles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to access this resource with this role"})
		c.Abort()
	}
}

// IsAdminOrSelf implements the ownership rule: the role check short-circuits
// first, then the principal must own the resource.
func IsAdminOrSelf(principal *services.Principal, ownerID uuid.UUID) bool {
	if principal.IsAdmin() {
		return true
	}
	return principal.UserID == ownerID
}
