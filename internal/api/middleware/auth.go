package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/swims/storefront/internal/domain"
	apperrors "github.com/swims/storefront/pkg/errors"
)

const (
	UserIDHeader   = "X-User-ID"
	AdminKeyHeader = "X-Admin-Key"

	userContextKey = "user"
)

// UserLookup resolves the signed-in user from the id the client sends
type UserLookup interface {
	FindUser(ctx context.Context, userID string) (*domain.User, error)
}

// AuthMiddleware requires X-User-ID and stores the resolved user in the context
func AuthMiddleware(users UserLookup, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if id == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserIDHeader + " header"})
			c.Abort()
			return
		}

		if !resolveUser(c, users, id, logger) {
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the user when X-User-ID is present and lets
// anonymous requests through
func OptionalAuthMiddleware(users UserLookup, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if id != "" && !resolveUser(c, users, id, logger) {
			c.Abort()
			return
		}
		c.Next()
	}
}

func resolveUser(c *gin.Context, users UserLookup, id string, logger *zap.Logger) bool {
	user, err := users.FindUser(c.Request.Context(), id)
	if err != nil {
		var up *apperrors.ErrUpstream
		if errors.As(err, &up) && up.StatusCode >= 400 && up.StatusCode < 500 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return false
		}
		logger.Error("Failed to resolve user", zap.String("user_id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "user lookup failed"})
		return false
	}
	if user == nil || user.ID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return false
	}

	c.Set(userContextKey, user)
	return true
}

// GetUserFromContext retrieves the user set by the auth middleware
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

// AdminMiddleware checks X-Admin-Key against a bcrypt hash. An empty hash
// disables the admin routes.
func AdminMiddleware(keyHash string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(AdminKeyHeader)
		if keyHash == "" || key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			logger.Warn("Invalid admin key", zap.String("client_ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
