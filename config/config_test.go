package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.MaxImages != 5 {
		t.Errorf("MaxImages = %d, want 5", cfg.MaxImages)
	}
	if cfg.MaxUploadBytes != 50*1024*1024 {
		t.Errorf("MaxUploadBytes = %d, want 50 MB", cfg.MaxUploadBytes)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")

	cfg := LoadConfig()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.UploadDir != "/tmp/uploads" {
		t.Errorf("UploadDir = %q, want /tmp/uploads", cfg.UploadDir)
	}
}

func TestExtension(t *testing.T) {
	cfg := LoadConfig()

	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", ".png"},
		{"audio/mpeg", ".mp3"},
		{"application/octet-stream", ".bin"},
		{"", ".bin"},
	}
	for _, tt := range tests {
		if got := cfg.Extension(tt.contentType); got != tt.want {
			t.Errorf("Extension(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestAspectRatios(t *testing.T) {
	tests := []struct {
		ratio string
		want  VideoSize
	}{
		{"16:9", VideoSize{1920, 1080}},
		{"9:16", VideoSize{1080, 1920}},
		{"1:1", VideoSize{1080, 1080}},
	}
	for _, tt := range tests {
		got, ok := AspectRatios[tt.ratio]
		if !ok {
			t.Errorf("aspect ratio %q missing", tt.ratio)
			continue
		}
		if got != tt.want {
			t.Errorf("AspectRatios[%q] = %+v, want %+v", tt.ratio, got, tt.want)
		}
	}
}
