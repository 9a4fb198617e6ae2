package models

import "testing"

func TestApplyDefaults(t *testing.T) {
	req := CreateVideoRequest{
		ImageFileIDs: []string{"a", "b"},
		AudioFileID:  "music",
		Texts:        []TextOverlay{{Text: "hi"}},
	}
	req.ApplyDefaults()

	if req.ImageDisplayDuration != 3.0 {
		t.Errorf("ImageDisplayDuration = %v, want 3.0", req.ImageDisplayDuration)
	}
	if req.TransitionDuration == nil || *req.TransitionDuration != 1.0 {
		t.Errorf("TransitionDuration = %v, want 1.0", req.TransitionDuration)
	}
	if req.FPS != 24 {
		t.Errorf("FPS = %d, want 24", req.FPS)
	}
	if req.VideoAspectRatio != "16:9" {
		t.Errorf("VideoAspectRatio = %q, want 16:9", req.VideoAspectRatio)
	}
	if req.Texts[0].Style != "Minimal" || req.Texts[0].Position != "bottom" {
		t.Errorf("text defaults = (%q, %q), want (Minimal, bottom)", req.Texts[0].Style, req.Texts[0].Position)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	zero := 0.0
	req := CreateVideoRequest{
		ImageFileIDs:         []string{"a"},
		AudioFileID:          "music",
		ImageDisplayDuration: 5,
		TransitionDuration:   &zero,
		FPS:                  30,
		VideoAspectRatio:     "9:16",
		Texts:                []TextOverlay{{Text: "hi", Style: "Retro", Position: "top"}},
	}
	req.ApplyDefaults()

	if req.ImageDisplayDuration != 5 {
		t.Errorf("ImageDisplayDuration = %v, want 5", req.ImageDisplayDuration)
	}
	// An explicit zero disables transitions; it must not be replaced by
	// the default.
	if req.TransitionDuration == nil || *req.TransitionDuration != 0 {
		t.Errorf("TransitionDuration = %v, want explicit 0", req.TransitionDuration)
	}
	if req.FPS != 30 {
		t.Errorf("FPS = %d, want 30", req.FPS)
	}
	if req.VideoAspectRatio != "9:16" {
		t.Errorf("VideoAspectRatio = %q, want 9:16", req.VideoAspectRatio)
	}
	if req.Texts[0].Style != "Retro" || req.Texts[0].Position != "top" {
		t.Errorf("text overrides lost: (%q, %q)", req.Texts[0].Style, req.Texts[0].Position)
	}
}
