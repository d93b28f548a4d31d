package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/service/auth"
)

const identityKey = "identity"

// TokenVerifier resolves a bearer token to a caller identity.
type TokenVerifier interface {
	ParseToken(token string) (*auth.Identity, error)
}

// Authorize gates a route group on a verified bearer token whose role is in
// the allow-list. Missing or bad credentials answer 401, a disallowed role
// answers 403.
func Authorize(verifier TokenVerifier, allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		identity, err := verifier.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		if !allowed[identity.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// BearerToken extracts the token from a standard Authorization header, or
// returns "" when the header is missing or malformed.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// CurrentUser returns the identity stored by Authorize, if any.
func CurrentUser(c *gin.Context) (*auth.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok
}
