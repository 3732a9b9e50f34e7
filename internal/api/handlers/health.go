package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/learnoverse/internal/models"
	"github.com/denisAlshanov/learnoverse/internal/utils"
)

// Pinger is satisfied by every VideoStore backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger
	message string
}

type ServiceHealth struct {
	Ready        bool   `json:"ready"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

type ReadinessResponse struct {
	Ready     bool                     `json:"ready"`
	Timestamp string                   `json:"timestamp"`
	Checks    map[string]ServiceHealth `json:"checks"`
}

func NewHealthHandler(store Pinger, message string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		message: message,
	}
}

// Health godoc
// @Summary Health check endpoint
// @Description Report that the server process is up
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "OK",
		Message: h.message,
	})
}

// Readiness godoc
// @Summary Readiness check endpoint
// @Description Check if the video store is reachable
// @Tags health
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Success 503 {object} ReadinessResponse
// @Router /ready [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx := c.Request.Context()

	storeHealth := h.checkStore(ctx)
	response := ReadinessResponse{
		Ready:     storeHealth.Ready,
		Timestamp: time.Now().Format(time.RFC3339),
		Checks:    map[string]ServiceHealth{"store": storeHealth},
	}

	if !response.Ready {
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Liveness godoc
// @Summary Liveness check endpoint
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /live [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) checkStore(ctx context.Context) ServiceHealth {
	start := time.Now()

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := h.store.Ping(checkCtx)
	responseTime := time.Since(start).String()

	if err != nil {
		utils.LogError(ctx, "Store health check failed", err)
		return ServiceHealth{
			Ready:        false,
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ServiceHealth{
		Ready:        true,
		ResponseTime: responseTime,
	}
}
