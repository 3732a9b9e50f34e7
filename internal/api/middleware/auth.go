package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/models"
	"github.com/denisAlshanov/learnoverse/internal/utils"
)

// AuthMiddleware guards write endpoints with a shared API key. With no key
// configured every request passes, which keeps local development keyless.
func AuthMiddleware(cfg *config.APIConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APIKey == "" {
			c.Next()
			return
		}

		if key := extractAPIKey(c); key != "" &&
			subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) == 1 {
			c.Next()
			return
		}

		appErr := utils.NewUnauthorizedError()
		utils.LogWarn(c.Request.Context(), "Rejected unauthenticated request", utils.Fields{
			"path": c.Request.URL.Path,
			"ip":   c.ClientIP(),
		})
		c.AbortWithStatusJSON(appErr.StatusCode, models.ErrorResponse{
			Success:   false,
			Message:   appErr.Message,
			RequestID: c.GetString("request_id"),
		})
	}
}

// extractAPIKey reads X-API-Key, falling back to a bearer token.
func extractAPIKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
