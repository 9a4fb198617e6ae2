package render

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Style maps a named text style to its font-size fraction of the canvas
// height and an ordered list of candidate font files. Candidates are
// tried in order at startup; a style with no resolvable candidate falls
// back to the renderer's built-in face.
type Style struct {
	Name       string
	SizeFrac   float64
	Candidates []string
}

const defaultStyle = "Minimal"

var styles = map[string]Style{
	"Meme Style": {
		Name:     "Meme Style",
		SizeFrac: 0.15,
		Candidates: []string{
			"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
			"/System/Library/Fonts/Supplemental/Impact.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		},
	},
	"Minimal": {
		Name:     "Minimal",
		SizeFrac: 0.07,
		Candidates: []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/System/Library/Fonts/Supplemental/Arial.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		},
	},
	"Dynamic": {
		Name:     "Dynamic",
		SizeFrac: 0.10,
		Candidates: []string{
			"/usr/share/fonts/truetype/freefont/FreeSansBold.ttf",
			"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		},
	},
	"Retro": {
		Name:     "Retro",
		SizeFrac: 0.08,
		Candidates: []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSerif.ttf",
			"/System/Library/Fonts/Supplemental/Georgia.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSerif-Regular.ttf",
		},
	},
}

// styleFor returns the style table entry for a name, defaulting to
// Minimal for unknown names.
func styleFor(name string) Style {
	if s, ok := styles[name]; ok {
		return s
	}
	s := styles[defaultStyle]
	s.SizeFrac = 0.08
	return s
}

// FontSet holds the fonts resolved once at startup, keyed by style name.
type FontSet struct {
	fonts map[string]*opentype.Font
	log   *zap.Logger
}

// LoadFonts resolves every style's candidate list. Missing fonts are
// non-fatal: the style simply renders with the built-in fallback face.
func LoadFonts(log *zap.Logger) *FontSet {
	if log == nil {
		log = zap.NewNop()
	}
	fs := &FontSet{fonts: make(map[string]*opentype.Font), log: log}

	for name, style := range styles {
		for _, candidate := range style.Candidates {
			data, err := os.ReadFile(candidate)
			if err != nil {
				continue
			}
			f, err := opentype.Parse(data)
			if err != nil {
				log.Warn("unparseable font file", zap.String("path", candidate), zap.Error(err))
				continue
			}
			fs.fonts[name] = f
			break
		}
		if _, ok := fs.fonts[name]; !ok {
			log.Warn("no font resolved for style, using fallback face", zap.String("style", name))
		}
	}
	return fs
}

// Face builds a sized face for a style, or nil if the style resolved no
// font (the caller then keeps its default face).
func (fs *FontSet) Face(styleName string, size float64) font.Face {
	f, ok := fs.fonts[styleFor(styleName).Name]
	if !ok {
		return nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		fs.log.Warn("building font face failed", zap.String("style", styleName), zap.Error(err))
		return nil
	}
	return face
}
