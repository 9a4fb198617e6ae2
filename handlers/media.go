package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"media-studio/apperr"
	"media-studio/models"
)

// ExtractAudioHandler extracts the audio track of an uploaded video into
// a new mp3 in the output store.
func (h *HandlerContext) ExtractAudioHandler(c *gin.Context) {
	var req models.FileOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Wrap(apperr.InvalidInput, err, "invalid request"))
		return
	}

	videoPath, err := h.Uploads.Resolve(req.FileID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	id, outPath := h.Outputs.Reserve(".mp3")
	if err := h.Media.ExtractAudio(videoPath, outPath); err != nil {
		// No partial output survives a failed extraction.
		os.Remove(outPath)
		h.respondError(c, err)
		return
	}

	h.Log.Info("audio extracted", zap.String("video_id", req.FileID), zap.String("audio_id", id))
	c.JSON(http.StatusOK, models.ExtractAudioResponse{
		Message:       "Audio extracted.",
		AudioFileUUID: id,
		AudioFilePath: outPath,
	})
}

// DownloadYouTubeHandler downloads a remote video into the upload store.
func (h *HandlerContext) DownloadYouTubeHandler(c *gin.Context) {
	var req models.DownloadYouTubeVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Wrap(apperr.InvalidInput, err, "invalid request"))
		return
	}

	id, path, err := h.Fetcher.Fetch(c.Request.Context(), req.YouTubeURL, h.Uploads)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DownloadYouTubeVideoResponse{
		Message:       "YouTube video downloaded successfully.",
		FileID:        id,
		VideoFilePath: path,
	})
}
