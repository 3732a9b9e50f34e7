package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/denisAlshanov/learnoverse/internal/api/handlers"
	"github.com/denisAlshanov/learnoverse/internal/api/middleware"
	"github.com/denisAlshanov/learnoverse/internal/config"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
}

func NewRouter(cfg *config.Config, videoHandler *handlers.VideoHandler, healthHandler *handlers.HealthHandler) *Router {
	// Set Gin mode
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Add middleware
	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	if corsMiddleware := middleware.CORSMiddleware(&cfg.CORS); corsMiddleware != nil {
		engine.Use(corsMiddleware)
	}

	// Health endpoints (no auth required)
	health := engine.Group("/")
	{
		health.GET("/health", healthHandler.Health)
		health.GET("/ready", healthHandler.Readiness)
		health.GET("/live", healthHandler.Liveness)
	}

	// Swagger documentation (no auth required)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group("/api")
	api.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		videos := api.Group("/videos")
		{
			videos.GET("", videoHandler.ListVideos)
			videos.GET("/:videoId", videoHandler.GetVideo)
			videos.POST("", middleware.AuthMiddleware(&cfg.API), videoHandler.AddVideo)
		}
	}

	return &Router{
		engine: engine,
		config: cfg,
	}
}

func (r *Router) Addr() string {
	return r.config.Server.Host + ":" + r.config.Server.Port
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
