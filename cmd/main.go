// Package main provides the entry point for the Learnoverse video API.
// @title Learnoverse Video API
// @version 1.0
// @description Tracks a list of YouTube video IDs and serves their live metadata to the mobile client.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.example.com/support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key authentication

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/denisAlshanov/learnoverse/docs" // Import for swagger docs
	"github.com/denisAlshanov/learnoverse/internal/api/handlers"
	"github.com/denisAlshanov/learnoverse/internal/api/router"
	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/database"
	"github.com/denisAlshanov/learnoverse/internal/services/catalog"
	"github.com/denisAlshanov/learnoverse/internal/services/youtube"
	"github.com/denisAlshanov/learnoverse/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// .env may set LOG_LEVEL after the logger was initialized
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		utils.SetLogLevel(level)
	}
	logger := utils.GetLogger()
	logger.WithFields(utils.Fields{
		"store":    cfg.Store.Backend,
		"provider": cfg.YouTube.Provider,
	}).Info("Starting Learnoverse server")

	ctx := context.Background()

	// Initialize video store
	store, err := database.NewVideoStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to open video store: %v", err)
	}

	// Initialize metadata provider
	provider, err := youtube.NewMetadataProvider(ctx, &cfg.YouTube)
	if err != nil {
		_ = store.Close(ctx)
		logger.Fatalf("Failed to initialize metadata provider: %v", err)
	}

	catalogService := catalog.NewService(store, provider)

	// Initialize handlers
	healthMessage := "Learnoverse server is running"
	if provider.Name() == config.ProviderMock {
		healthMessage = "Learnoverse demo server is running"
	}
	videoHandler := handlers.NewVideoHandler(catalogService)
	healthHandler := handlers.NewHealthHandler(store, healthMessage)

	// Initialize router
	r := router.NewRouter(cfg, videoHandler, healthHandler)

	srv := &http.Server{
		Addr:    r.Addr(),
		Handler: r.Engine(),
	}

	// Start server
	go func() {
		logger.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Failed to shut down server cleanly: %v", err)
	}

	// Close store connection
	if err := store.Close(shutdownCtx); err != nil {
		logger.Errorf("Failed to close video store: %v", err)
	}

	logger.Info("Server shutdown complete")
}
