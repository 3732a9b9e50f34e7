package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/learnoverse/internal/utils"
)

const (
	CorrelationIDHeader = "X-Correlation-ID"
	RequestIDHeader     = "X-Request-ID"
)

func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check if correlation ID exists in header
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = utils.GenerateCorrelationID()
		}

		requestID := utils.GenerateRequestID()

		c.Set("correlation_id", correlationID)
		c.Set("request_id", requestID)

		c.Header(CorrelationIDHeader, correlationID)
		c.Header(RequestIDHeader, requestID)

		// Create context with IDs for logging
		ctx := c.Request.Context()
		ctx = utils.WithCorrelationID(ctx, correlationID)
		ctx = utils.WithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		utils.LogInfo(ctx, "Incoming request", utils.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		})

		c.Next()

		utils.LogInfo(ctx, "Request completed", utils.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}
