package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/auth"
)

// ClaimsContextKey is the gin context key holding the caller's claims.
const ClaimsContextKey = "authClaims"

// Authenticate validates the bearer token and stores the caller's claims on
// the request context. Requests without a valid token are rejected.
func Authenticate(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := authService.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "invalid token"
			if err == auth.ErrExpiredToken {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// Authorize gates a route on a capability. It must run after Authenticate.
func Authorize(cap auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !auth.Allowed(claims.Role, cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// GetClaims extracts the caller's claims from the gin context.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(ClaimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
