// Package handlers exposes the HTTP surface: uploads, remote video
// download, audio extraction, slideshow creation, result download and
// old-file cleanup.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"media-studio/apperr"
	"media-studio/config"
	"media-studio/media"
	"media-studio/models"
	"media-studio/pipeline"
	"media-studio/store"
	"media-studio/youtube"
)

// HandlerContext holds dependencies for handlers
type HandlerContext struct {
	Config   *config.AppConfig
	Uploads  *store.Store
	Outputs  *store.Store
	Media    *media.Engine
	Pipeline *pipeline.Pipeline
	Fetcher  *youtube.Fetcher
	Log      *zap.Logger
}

// respondError maps an error to its status class and writes the
// structured payload. Messages are descriptive; stack traces stay in
// the logs.
func (h *HandlerContext) respondError(c *gin.Context, err error) {
	h.Log.Warn("request failed",
		zap.String("path", c.FullPath()),
		zap.String("code", apperr.Code(err)),
		zap.Error(err))
	c.JSON(apperr.HTTPStatus(err), models.ErrorResponse{
		Error: err.Error(),
		Code:  apperr.Code(err),
	})
}

// HealthHandler reports service liveness.
func (h *HandlerContext) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
