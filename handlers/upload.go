package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"media-studio/apperr"
	"media-studio/models"
)

// UploadHandler stores an uploaded video, image or audio file and
// returns its generated identifier.
func (h *HandlerContext) UploadHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, apperr.Wrap(apperr.InvalidInput, err, "a 'file' form field is required"))
		return
	}

	if fileHeader.Size <= 0 || fileHeader.Size > h.Config.MaxUploadBytes {
		h.respondError(c, apperr.New(apperr.InvalidInput,
			"file size exceeds %d MB or size unknown", h.Config.MaxUploadBytes/(1024*1024)))
		return
	}

	// Prefer the original extension; fall back to the declared content type.
	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = h.Config.Extension(fileHeader.Header.Get("Content-Type"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, apperr.Wrap(apperr.Internal, err, "could not read uploaded file"))
		return
	}
	defer src.Close()

	id, path, err := h.Uploads.Put(ext, src)
	if err != nil {
		h.respondError(c, apperr.Wrap(apperr.Internal, err, "could not store uploaded file"))
		return
	}

	h.Log.Info("file uploaded",
		zap.String("file_id", id),
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size))

	c.JSON(http.StatusOK, models.UploadFileResponse{
		Message:  "File uploaded successfully",
		FileID:   id,
		FilePath: path,
		Filename: fileHeader.Filename,
	})
}
