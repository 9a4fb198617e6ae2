package models

// UploadFileResponse is returned after a successful upload.
type UploadFileResponse struct {
	Message  string `json:"message"`
	FileID   string `json:"file_id"`
	FilePath string `json:"file_path"`
	Filename string `json:"filename"`
}

// FileOperationRequest references a previously uploaded file.
type FileOperationRequest struct {
	FileID string `json:"file_id" binding:"required"`
}

// ExtractAudioResponse is returned after extracting an audio track.
type ExtractAudioResponse struct {
	Message       string `json:"message"`
	AudioFileUUID string `json:"audio_file_uuid"`
	AudioFilePath string `json:"audio_file_path"`
}

// DownloadYouTubeVideoRequest asks the server to fetch a remote video.
type DownloadYouTubeVideoRequest struct {
	YouTubeURL string `json:"youtube_url" binding:"required,url"`
}

// DownloadYouTubeVideoResponse reports the stored video.
type DownloadYouTubeVideoResponse struct {
	Message       string `json:"message"`
	FileID        string `json:"file_id"`
	VideoFilePath string `json:"video_file_path"`
}

// TextOverlay is a styled text layer bound either to one slide
// (ImageIndex set) or to the whole timeline.
type TextOverlay struct {
	Text       string `json:"text" binding:"required"`
	Style      string `json:"style"`
	ImageIndex *int   `json:"image_index" binding:"omitempty,gte=0"`
	Position   string `json:"position" binding:"omitempty,oneof=top center bottom"`
}

// CreateVideoRequest describes a slideshow build: ordered images, one
// music track, optional text overlays and encoding parameters.
type CreateVideoRequest struct {
	ImageFileIDs          []string      `json:"image_file_ids" binding:"required,min=1,max=5"`
	AudioFileID           string        `json:"audio_file_id" binding:"required"`
	ImageDisplayDuration  float64       `json:"image_display_duration" binding:"omitempty,gt=0"`
	TransitionDuration    *float64      `json:"transition_duration" binding:"omitempty,gte=0"`
	MusicSegmentStartTime float64       `json:"music_segment_start_time" binding:"omitempty,gte=0"`
	AudioSegmentDuration  *float64      `json:"audio_segment_duration_from_music" binding:"omitempty,gt=0"`
	FPS                   int           `json:"fps" binding:"omitempty,gt=0"`
	Texts                 []TextOverlay `json:"texts"`
	VideoAspectRatio      string        `json:"video_aspect_ratio" binding:"omitempty,oneof=16:9 9:16 1:1"`
	EnableImageAnimations bool          `json:"enable_image_animations"`
}

// ApplyDefaults fills the zero-value fields the API documents defaults for.
func (r *CreateVideoRequest) ApplyDefaults() {
	if r.ImageDisplayDuration == 0 {
		r.ImageDisplayDuration = 3.0
	}
	if r.TransitionDuration == nil {
		d := 1.0
		r.TransitionDuration = &d
	}
	if r.FPS == 0 {
		r.FPS = 24
	}
	if r.VideoAspectRatio == "" {
		r.VideoAspectRatio = "16:9"
	}
	for i := range r.Texts {
		if r.Texts[i].Style == "" {
			r.Texts[i].Style = "Minimal"
		}
		if r.Texts[i].Position == "" {
			r.Texts[i].Position = "bottom"
		}
	}
}

// CreateVideoResponse reports the rendered slideshow.
type CreateVideoResponse struct {
	Message       string `json:"message"`
	VideoFileUUID string `json:"video_file_uuid"`
	VideoFilePath string `json:"video_file_path"`
}

// CleanupResponse summarizes an old-file sweep.
type CleanupResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// ErrorResponse is the structured error payload for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
