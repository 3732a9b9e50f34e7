package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/learnoverse/internal/models"
	"github.com/denisAlshanov/learnoverse/internal/services/catalog"
	"github.com/denisAlshanov/learnoverse/internal/utils"
)

type VideoHandler struct {
	catalog *catalog.Service
}

func NewVideoHandler(catalog *catalog.Service) *VideoHandler {
	return &VideoHandler{
		catalog: catalog,
	}
}

// ListVideos godoc
// @Summary List tracked videos
// @Description Return live metadata for every tracked video. An empty catalog answers 200 with success=false.
// @Tags videos
// @Produce json
// @Success 200 {object} models.VideoListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	resp, err := h.catalog.ListVideos(c.Request.Context())
	if err != nil {
		errorResponse(c, utils.AsAppError(err, "Error fetching videos"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetVideo godoc
// @Summary Get a tracked video
// @Description Return live metadata for one tracked video
// @Tags videos
// @Produce json
// @Param videoId path string true "YouTube video ID"
// @Success 200 {object} models.VideoResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/videos/{videoId} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	video, err := h.catalog.GetVideo(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		errorResponse(c, utils.AsAppError(err, "Error fetching video"))
		return
	}

	c.JSON(http.StatusOK, models.VideoResponse{
		Success: true,
		Video:   *video,
	})
}

// AddVideo godoc
// @Summary Track a new video
// @Description Add a YouTube video ID (or URL) to the catalog
// @Tags videos
// @Accept json
// @Produce json
// @Param request body models.AddVideoRequest true "Video to track"
// @Success 201 {object} models.AddVideoResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/videos [post]
// @Security ApiKeyAuth
func (h *VideoHandler) AddVideo(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.AddVideoRequest
	// An empty body is treated like a body without videoId.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.LogWarn(ctx, "Invalid add video request", utils.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success:   false,
			Message:   "Invalid request body",
			RequestID: c.GetString("request_id"),
		})
		return
	}

	record, err := h.catalog.AddVideo(ctx, req.VideoID)
	if err != nil {
		errorResponse(c, utils.AsAppError(err, "Error adding video"))
		return
	}

	c.JSON(http.StatusCreated, models.AddVideoResponse{
		Success: true,
		Message: "Video added successfully",
		Video:   *record,
	})
}

// errorResponse renders the failure envelope. Server-side failures carry the
// underlying cause in "error".
func errorResponse(c *gin.Context, err *utils.AppError) {
	resp := models.ErrorResponse{
		Success:   false,
		Message:   err.Message,
		RequestID: c.GetString("request_id"),
	}
	if err.StatusCode >= http.StatusInternalServerError {
		resp.Error = err.CauseMessage()
	}

	c.JSON(err.StatusCode, resp)
}
