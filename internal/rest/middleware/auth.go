package middleware

import (
	"net/http"
	"strings"

	"github.com/flexprice/assignments/internal/auth"
	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/types"
	"github.com/gin-gonic/gin"
)

// GuestAuthenticateMiddleware is a middleware that allows requests without authentication
// It sets the default tenant ID and user ID in the request context
func GuestAuthenticateMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// AuthenticateMiddleware is a middleware that authenticates requests based on either:
// 1. API key in the x-api-key header
// 2. JWT token in the Authorization header as a Bearer token
// It sets the user ID and tenant ID in the request context for downstream handlers
func AuthenticateMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader(types.HeaderAPIKey); apiKey != "" {
			tenantID, userID, valid := auth.ValidateAPIKey(cfg, apiKey)
			if !valid || tenantID == "" || userID == "" {
				logger.Debugw("invalid api key")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
				c.Abort()
				return
			}

			setPrincipal(c, tenantID, userID)
			c.Next()
			return
		}

		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(cfg.Auth.Secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			logger.Errorw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		setPrincipal(c, claims.TenantID, claims.UserID)
		c.Next()
	}
}

func setPrincipal(c *gin.Context, tenantID, userID string) {
	ctx := c.Request.Context()
	ctx = types.SetTenantID(ctx, tenantID)
	ctx = types.SetUserID(ctx, userID)
	c.Request = c.Request.WithContext(ctx)
}
