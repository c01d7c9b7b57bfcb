package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/promanage/promanage-api/internal/constants"
	apierrors "github.com/promanage/promanage-api/internal/errors"
	"github.com/promanage/promanage-api/internal/services"
)

// RequireAuth verifies the bearer session token and stores the resolved
// identity in the request context.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "Authorization header is missing.")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Token is expired or invalid.")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUserEmail retrieves the current user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(constants.ContextKeyUserEmail)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}
