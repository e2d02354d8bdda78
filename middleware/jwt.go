package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fundarhq/fundar/backend/services"
	"github.com/gin-gonic/gin"
)

const PRINCIPAL_KEY = "principal"

// BearerTokenAuth extracts and verifies the bearer token on protected
// routes. A missing header and any verification failure both end the
// request with 401, the distinction is only logged. On success the
// principal is attached to the request context.
func BearerTokenAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No Authorization header provided"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not find bearer token in Authorization header"})
			c.Abort()
			return
		}

		principal, err := tokens.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				slog.Warn("rejected expired token")
			case errors.Is(err, services.ErrBadSignature):
				slog.Warn("rejected token with bad signature")
			case errors.Is(err, services.ErrInvalidSubject):
				slog.Warn("rejected token with invalid subject")
			default:
				slog.Warn("rejected malformed token", "error", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is invalid"})
			c.Abort()
			return
		}

		c.Set(PRINCIPAL_KEY, principal)
		c.Next()
	}
}

// GetPrincipal returns the authenticated principal set by BearerTokenAuth.
func GetPrincipal(c *gin.Context) (*services.Principal, bool) {
	value, exists := c.Get(PRINCIPAL_KEY)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*services.Principal)
	return principal, ok
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
