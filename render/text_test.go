package render

import (
	"image"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits on one line", "hello world", 20, []string{"hello world"}},
		{"wraps at width", "one two three four", 9, []string{"one two", "three", "four"}},
		{"long word hard split", "abcdefghijkl", 8, []string{"abcdefgh", "ijkl"}},
		{"empty text", "", 10, nil},
		{"collapses whitespace", "  a   b  ", 10, []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %v, want %v", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapTextNeverExceedsWidth(t *testing.T) {
	const width = 12
	lines := wrapText("the quick brown fox jumps over an extraordinarily lazy dog", width)
	for _, line := range lines {
		if len(line) > width {
			t.Errorf("line %q is %d chars, limit %d", line, len(line), width)
		}
	}
}

func TestMaxCharsPerLine(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		fontSize float64
		want     int
	}{
		{"typical hd canvas", 1920, 108, 32},
		{"floored at minimum", 100, 108, 8},
		{"zero font size falls back", 1920, 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxCharsPerLine(tt.width, tt.fontSize); got != tt.want {
				t.Errorf("maxCharsPerLine(%d, %v) = %d, want %d", tt.width, tt.fontSize, got, tt.want)
			}
		})
	}
}

func TestAnchorY(t *testing.T) {
	tests := []struct {
		name     string
		position string
		height   int
		block    float64
		want     float64
	}{
		{"top", "top", 1000, 100, 100},
		{"center", "center", 1000, 100, 450},
		{"bottom", "bottom", 1000, 100, 800},
		{"unknown defaults to bottom", "", 1000, 100, 800},
		{"clamped on canvas", "center", 100, 400, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := anchorY(tt.position, tt.height, tt.block); got != tt.want {
				t.Errorf("anchorY(%q, %d, %v) = %v, want %v", tt.position, tt.height, tt.block, got, tt.want)
			}
		})
	}
}

func TestStyleForUnknownFallsBack(t *testing.T) {
	style := styleFor("No Such Style")
	if style.Name != "Minimal" {
		t.Errorf("styleFor fallback name = %q, want Minimal", style.Name)
	}
	if style.SizeFrac <= 0 {
		t.Errorf("styleFor fallback size fraction = %v, want > 0", style.SizeFrac)
	}
}

func TestRenderProducesCanvasOfRequestedSize(t *testing.T) {
	r := NewRenderer(zap.NewNop())
	img := r.Render("hello", 320, 240, "Minimal", "bottom")

	want := image.Rect(0, 0, 320, 240)
	if img.Bounds() != want {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), want)
	}

	// The canvas starts transparent, so any drawn glyph leaves at least
	// one opaque pixel behind.
	opaque := false
	for y := 0; y < 240 && !opaque; y++ {
		for x := 0; x < 320; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				opaque = true
				break
			}
		}
	}
	if !opaque {
		t.Error("rendered image is fully transparent")
	}
}
