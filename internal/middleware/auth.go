package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pathlight/internal/models"
	"github.com/pathlight/internal/service"
	"github.com/pathlight/pkg/response"
)

const (
	// ContextKeyUser is the key for the authenticated user in gin context
	ContextKeyUser = "user"
)

// Authenticator resolves a bearer token into a user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware creates a bearer token authentication middleware.
// The user is looked up on every request; handlers never trust a client supplied id.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				response.Unauthorized(c, "Could not validate credentials")
			} else {
				LogError("authenticate failed", "error", err)
				response.InternalError(c, "internal server error")
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetUser gets the authenticated user from the gin context
func GetUser(c *gin.Context) *models.User {
	user, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	return user.(*models.User)
}
