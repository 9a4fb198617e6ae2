package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"media-studio/apperr"
	"media-studio/config"
	"media-studio/models"
	"media-studio/pipeline"
)

// CreateVideoHandler runs the slideshow pipeline: ordered images, one
// music track, optional text overlays.
func (h *HandlerContext) CreateVideoHandler(c *gin.Context) {
	var req models.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.Wrap(apperr.InvalidInput, err, "invalid request"))
		return
	}
	req.ApplyDefaults()

	if len(req.ImageFileIDs) > h.Config.MaxImages {
		h.respondError(c, apperr.New(apperr.InvalidInput,
			"at most %d images are allowed, got %d", h.Config.MaxImages, len(req.ImageFileIDs)))
		return
	}

	// Resolve every referenced file before any rendering starts.
	imagePaths := make([]string, 0, len(req.ImageFileIDs))
	for _, id := range req.ImageFileIDs {
		path, err := h.Uploads.Resolve(id)
		if err != nil {
			h.respondError(c, err)
			return
		}
		imagePaths = append(imagePaths, path)
	}

	// The audio track may be an upload or a previously extracted output.
	audioPath, err := h.Uploads.Resolve(req.AudioFileID)
	if err != nil {
		audioPath, err = h.Outputs.Resolve(req.AudioFileID)
		if err != nil {
			h.respondError(c, apperr.New(apperr.NotFound,
				"audio file ID '%s' not found in uploads or outputs", req.AudioFileID))
			return
		}
	}

	size := config.AspectRatios[req.VideoAspectRatio]

	texts := make([]pipeline.OverlaySpec, 0, len(req.Texts))
	for _, t := range req.Texts {
		texts = append(texts, pipeline.OverlaySpec{
			Text:       t.Text,
			Style:      t.Style,
			Position:   t.Position,
			ImageIndex: t.ImageIndex,
		})
	}

	id, outPath := h.Outputs.Reserve(".mp4")
	err = h.Pipeline.Run(pipeline.Request{
		ImagePaths:       imagePaths,
		AudioPath:        audioPath,
		OutputPath:       outPath,
		Width:            size.Width,
		Height:           size.Height,
		ImageDuration:    req.ImageDisplayDuration,
		Transition:       *req.TransitionDuration,
		MusicStart:       req.MusicSegmentStartTime,
		SegmentLength:    req.AudioSegmentDuration,
		FPS:              req.FPS,
		Texts:            texts,
		EnableAnimations: req.EnableImageAnimations,
	})
	if err != nil {
		// Never leave a partial output behind.
		os.Remove(outPath)
		h.respondError(c, err)
		return
	}

	h.Log.Info("video created", zap.String("video_id", id), zap.Int("images", len(imagePaths)))
	c.JSON(http.StatusOK, models.CreateVideoResponse{
		Message:       fmt.Sprintf("Video created successfully from %d image(s).", len(imagePaths)),
		VideoFileUUID: id,
		VideoFilePath: outPath,
	})
}
