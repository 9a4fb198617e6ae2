package config

import (
	"os"
	"path/filepath"
)

// AppConfig holds all the application configuration
type AppConfig struct {
	Port           string
	UploadDir      string
	OutputDir      string
	TempDir        string
	MaxUploadBytes int64
	MaxImages      int
	ContentTypes   map[string]string
}

// VideoSize is a fixed output resolution keyed by aspect ratio.
type VideoSize struct {
	Width  int
	Height int
}

// AspectRatios maps the three supported aspect ratios to pixel sizes.
var AspectRatios = map[string]VideoSize{
	"16:9": {1920, 1080},
	"9:16": {1080, 1920},
	"1:1":  {1080, 1080},
}

// Extension returns the file extension for an uploaded content type,
// falling back to .bin for anything unrecognized.
func (cfg *AppConfig) Extension(contentType string) string {
	if ext, ok := cfg.ContentTypes[contentType]; ok {
		return ext
	}
	return ".bin"
}

// LoadConfig loads the application configuration from environment variables
// with fallback to default values
func LoadConfig() *AppConfig {
	config := &AppConfig{
		Port:           getEnv("PORT", "8000"),
		UploadDir:      getEnv("UPLOAD_DIR", filepath.Join(".", "uploaded_files")),
		OutputDir:      getEnv("OUTPUT_DIR", filepath.Join(".", "processed_outputs")),
		TempDir:        getEnv("TEMP_DIR", filepath.Join(".", "temp")),
		MaxUploadBytes: 50 * 1024 * 1024,
		MaxImages:      5,
		ContentTypes: map[string]string{
			"video/mp4":  ".mp4",
			"audio/mpeg": ".mp3",
			"audio/wav":  ".wav",
			"image/jpeg": ".jpg",
			"image/png":  ".png",
		},
	}

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
