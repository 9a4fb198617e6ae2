// Package render draws styled, word-wrapped text onto transparent
// canvases for compositing over video timelines.
package render

import (
	"image"
	"strings"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

const (
	// strokeWidth is the fixed outline width keeping text legible over
	// arbitrary backgrounds.
	strokeWidth = 2
	// minWrapWidth is the narrowest line, in characters, wrapping will
	// produce; words are never split above it.
	minWrapWidth = 8
	// lineSpacing multiplies the font height between wrapped lines.
	lineSpacing = 1.2
)

// Renderer rasterizes text layers using the fonts resolved at startup.
type Renderer struct {
	fonts *FontSet
	log   *zap.Logger
}

// NewRenderer loads the style fonts and returns a renderer. Never fails:
// unresolved fonts degrade to the built-in face.
func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{fonts: LoadFonts(log), log: log}
}

// maxCharsPerLine estimates how many characters fit on one line from the
// canvas width and an approximate average glyph width of half the font
// size.
func maxCharsPerLine(canvasWidth int, fontSize float64) int {
	avgCharWidth := fontSize * 0.5
	if avgCharWidth <= 0 {
		return 20
	}
	n := int(float64(canvasWidth) * 0.9 / avgCharWidth)
	if n < minWrapWidth {
		n = minWrapWidth
	}
	return n
}

// wrapText greedily wraps words to at most width characters per line. A
// single word longer than a full line is hard-split; shorter words are
// never broken.
func wrapText(text string, width int) []string {
	var lines []string
	var line string

	for _, word := range strings.Fields(text) {
		for len(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		if word == "" {
			continue
		}
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// anchorY returns the top of the text block for a vertical position,
// clamped to stay on the canvas.
func anchorY(position string, canvasHeight int, blockHeight float64) float64 {
	h := float64(canvasHeight)
	var y float64
	switch position {
	case "top":
		y = h * 0.1
	case "center":
		y = (h - blockHeight) / 2
	default: // bottom
		y = h*0.9 - blockHeight
	}
	if y < 0 {
		y = 0
	}
	return y
}

// Render draws text onto a transparent canvas of the given size, centered
// horizontally and anchored per position (top, center or bottom). Text is
// white with a fixed black stroke.
func (r *Renderer) Render(text string, width, height int, styleName, position string) image.Image {
	style := styleFor(styleName)
	fontSize := float64(height) * style.SizeFrac

	dc := gg.NewContext(width, height)
	if face := r.fonts.Face(style.Name, fontSize); face != nil {
		dc.SetFontFace(face)
	}

	lines := wrapText(text, maxCharsPerLine(width, fontSize))
	lineHeight := dc.FontHeight() * lineSpacing
	blockHeight := lineHeight * float64(len(lines))

	y := anchorY(position, height, blockHeight) + dc.FontHeight()
	cx := float64(width) / 2

	for _, line := range lines {
		// Outline first: the glyph drawn at eight compass offsets.
		dc.SetRGB(0, 0, 0)
		for dx := -strokeWidth; dx <= strokeWidth; dx += strokeWidth {
			for dy := -strokeWidth; dy <= strokeWidth; dy += strokeWidth {
				if dx == 0 && dy == 0 {
					continue
				}
				dc.DrawStringAnchored(line, cx+float64(dx), y+float64(dy), 0.5, 0)
			}
		}
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(line, cx, y, 0.5, 0)
		y += lineHeight
	}

	return dc.Image()
}

// RenderToFile renders a text layer and writes it as a PNG.
func (r *Renderer) RenderToFile(text string, width, height int, styleName, position, path string) error {
	img := r.Render(text, width, height, styleName, position)
	return gg.SavePNG(path, img)
}
