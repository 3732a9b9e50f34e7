package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/learnoverse/internal/config"
)

// CORSMiddleware returns nil when CORS is disabled or no origin is allowed.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	if !cfg.Enabled || len(cfg.AllowedOrigins) == 0 {
		return nil
	}

	corsConfig := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}

	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			break
		}
	}
	if !corsConfig.AllowAllOrigins {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}

	return cors.New(corsConfig)
}
