package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"media-studio/apperr"
	"media-studio/models"
)

// DownloadResultHandler serves a processed or uploaded file as an
// attachment, checking the output store first.
func (h *HandlerContext) DownloadResultHandler(c *gin.Context) {
	fileID := c.Param("file_id")

	path, err := h.Outputs.Resolve(fileID)
	if err != nil {
		path, err = h.Uploads.Resolve(fileID)
		if err != nil {
			h.respondError(c, apperr.New(apperr.NotFound,
				"file with ID '%s' not found in outputs or uploads", fileID))
			return
		}
	}

	c.FileAttachment(path, filepath.Base(path))
}

// CleanupHandler deletes files older than the requested age from both
// stores.
func (h *HandlerContext) CleanupHandler(c *gin.Context) {
	ageHours := 1
	if v := c.PostForm("age_in_hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.respondError(c, apperr.New(apperr.InvalidInput, "age_in_hours must be an integer >= 1"))
			return
		}
		ageHours = n
	}

	maxAge := time.Duration(ageHours) * time.Hour
	errStrings := []string{}

	deleted, errs := h.Uploads.Sweep(maxAge)
	n, outErrs := h.Outputs.Sweep(maxAge)
	deleted += n
	for _, err := range append(errs, outErrs...) {
		errStrings = append(errStrings, err.Error())
	}

	h.Log.Info("cleanup complete", zap.Int("deleted", deleted), zap.Int("errors", len(errStrings)))
	c.JSON(http.StatusOK, models.CleanupResponse{
		Message: fmt.Sprintf("Cleanup complete. Deleted %d old file(s).", deleted),
		Errors:  errStrings,
	})
}
