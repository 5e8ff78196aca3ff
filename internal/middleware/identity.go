package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gift-service/internal/repositories"
)

// IdentityMiddleware resolves the acting user from the X-User-ID header. The
// app switches between local profiles instead of authenticating, so identity
// is asserted by the client and only checked against the users table.
func IdentityMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			return
		}

		userID, err := strconv.Atoi(header)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		if _, err := userRepo.GetUser(c.Request.Context(), userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
