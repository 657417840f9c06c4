package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityContextKey = "auth.identity"

// Middleware validates the Bearer token and resolves the caller identity
// before any protected handler runs.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User is not authorized or token is missing"})
			return
		}

		identity, err := ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// CallerFrom returns the identity stored by Middleware.
func CallerFrom(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}
