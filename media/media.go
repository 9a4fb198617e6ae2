// Package media wraps the external encoder. It turns pipeline-level
// operations (slide rendering, cross-fade concatenation, overlay
// compositing, audio shaping, final mux) into ffmpeg invocations and
// hands back probed Clip handles. No compositing or codec work happens
// in-process.
package media

import (
	"fmt"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"media-studio/apperr"
)

// Animation selects the per-slide motion applied by RenderSlide.
type Animation string

const (
	AnimationNone   Animation = ""
	AnimationPan    Animation = "pan"
	AnimationRotate Animation = "rotate"
)

// SlideSpec describes one still image rendered into a fixed-size,
// fixed-duration visual clip.
type SlideSpec struct {
	ImagePath string
	Width     int
	Height    int
	Duration  float64
	FPS       int
	Animation Animation
}

// XfadeStep is one cross-fade between consecutive slides: the clamped
// fade duration and the offset into the accumulated timeline where the
// fade starts.
type XfadeStep struct {
	Duration float64
	Offset   float64
}

// OverlayLayer is a transparent still composited over the timeline for
// the interval [Start, End).
type OverlayLayer struct {
	Path  string
	Start float64
	End   float64
}

// Engine runs encoder invocations, writing intermediates into TempDir.
type Engine struct {
	TempDir string
	Log     *zap.Logger
}

// NewEngine returns an engine writing scratch files into tempDir.
func NewEngine(tempDir string, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{TempDir: tempDir, Log: log}
}

// TempFile returns a collision-free scratch path with the given
// extension inside the engine's temp directory.
func (e *Engine) TempFile(ext string) string {
	return tempPath(e.TempDir, ext)
}

// newClip probes a freshly rendered temp file and wraps it in a handle.
func (e *Engine) newClip(path string) (*Clip, error) {
	p, err := ProbeFile(path)
	if err != nil {
		return nil, err
	}
	return &Clip{Path: path, Duration: p.Duration, Width: p.Width, Height: p.Height, temp: true}, nil
}

// RenderSlide converts one source image into a WxH clip of exactly
// spec.Duration seconds: cover-scale, center-crop, then the optional
// pan or rotate animation.
func (e *Engine) RenderSlide(spec SlideSpec) (*Clip, error) {
	canvas := fmt.Sprintf("%d:%d", spec.Width, spec.Height)

	in := ffmpeg.Input(spec.ImagePath, ffmpeg.KwArgs{
		"loop":      1,
		"t":         spec.Duration,
		"framerate": spec.FPS,
	})
	v := in.
		Filter("scale", ffmpeg.Args{coverScale(spec.Width, spec.Height)},
			ffmpeg.KwArgs{"force_original_aspect_ratio": "increase"}).
		Filter("crop", ffmpeg.Args{canvas})

	switch spec.Animation {
	case AnimationPan:
		// Content at 110%, crop window oscillating vertically.
		zoomed := fmt.Sprintf("%d:%d", spec.Width*11/10, spec.Height*11/10)
		v = v.
			Filter("scale", ffmpeg.Args{zoomed}).
			Filter("crop", ffmpeg.Args{canvas, "(iw-ow)/2", panYExpr(spec.Duration)})
	case AnimationRotate:
		// 5 degrees per second without frame expansion, then 120%.
		v = v.
			Filter("rotate", ffmpeg.Args{rotateExpr()}).
			Filter("scale", ffmpeg.Args{"iw*1.2", "ih*1.2"}).
			Filter("crop", ffmpeg.Args{canvas})
	}
	v = v.Filter("setsar", ffmpeg.Args{"1"}).Filter("format", ffmpeg.Args{"yuv420p"})

	out := tempPath(e.TempDir, ".mp4")
	err := v.Output(out, ffmpeg.KwArgs{
		"c:v":     "libx264",
		"preset":  "medium",
		"pix_fmt": "yuv420p",
		"r":       spec.FPS,
		"t":       spec.Duration,
		"an":      "",
	}).OverWriteOutput().Run()
	if err != nil {
		return nil, apperr.Wrap(apperr.EncodeFailure, err, "rendering slide from %s", spec.ImagePath)
	}
	e.Log.Debug("slide rendered", zap.String("image", spec.ImagePath), zap.String("clip", out))
	return e.newClip(out)
}

// CrossfadeConcat composites two or more slides into one timeline,
// cross-fading each consecutive pair per steps. len(steps) must equal
// len(clips)-1.
func (e *Engine) CrossfadeConcat(clips []*Clip, steps []XfadeStep, fps int) (*Clip, error) {
	if len(clips) < 2 || len(steps) != len(clips)-1 {
		return nil, apperr.New(apperr.Internal, "crossfade concat needs n clips and n-1 steps, got %d/%d", len(clips), len(steps))
	}

	acc := ffmpeg.Input(clips[0].Path)
	for i, step := range steps {
		next := ffmpeg.Input(clips[i+1].Path)
		if step.Duration > 0 {
			acc = ffmpeg.Filter([]*ffmpeg.Stream{acc, next}, "xfade", nil, ffmpeg.KwArgs{
				"transition": "fade",
				"duration":   step.Duration,
				"offset":     step.Offset,
			})
		} else {
			acc = ffmpeg.Filter([]*ffmpeg.Stream{acc, next}, "concat", nil, ffmpeg.KwArgs{
				"n": 2, "v": 1, "a": 0,
			})
		}
	}

	out := tempPath(e.TempDir, ".mp4")
	err := acc.Output(out, ffmpeg.KwArgs{
		"c:v":     "libx264",
		"preset":  "medium",
		"pix_fmt": "yuv420p",
		"r":       fps,
		"an":      "",
	}).OverWriteOutput().Run()
	if err != nil {
		return nil, apperr.Wrap(apperr.EncodeFailure, err, "concatenating %d slides", len(clips))
	}
	e.Log.Debug("timeline assembled", zap.Int("slides", len(clips)), zap.String("clip", out))
	return e.newClip(out)
}

// OverlayLayers composites transparent text layers onto the timeline,
// each enabled only during its interval.
func (e *Engine) OverlayLayers(timeline *Clip, layers []OverlayLayer, total float64, fps int) (*Clip, error) {
	if len(layers) == 0 {
		return nil, apperr.New(apperr.Internal, "overlay called with no layers")
	}

	v := ffmpeg.Input(timeline.Path)
	for _, layer := range layers {
		img := ffmpeg.Input(layer.Path, ffmpeg.KwArgs{"loop": 1, "t": total, "framerate": fps})
		v = ffmpeg.Filter([]*ffmpeg.Stream{v, img}, "overlay", nil, ffmpeg.KwArgs{
			"enable":     overlayEnableExpr(layer.Start, layer.End),
			"eof_action": "pass",
		})
	}

	out := tempPath(e.TempDir, ".mp4")
	err := v.Output(out, ffmpeg.KwArgs{
		"c:v":     "libx264",
		"preset":  "medium",
		"pix_fmt": "yuv420p",
		"r":       fps,
		"t":       total,
		"an":      "",
	}).OverWriteOutput().Run()
	if err != nil {
		return nil, apperr.Wrap(apperr.EncodeFailure, err, "compositing %d text layers", len(layers))
	}
	e.Log.Debug("text layers composited", zap.Int("layers", len(layers)), zap.String("clip", out))
	return e.newClip(out)
}

// ExtractSegment renders [start, start+length) of a track into a fresh
// audio clip; a nil length means everything from start to the end.
func (e *Engine) ExtractSegment(trackPath string, start float64, length *float64) (*Clip, error) {
	kw := ffmpeg.KwArgs{"ss": start}
	if length != nil {
		kw["t"] = *length
	}

	out := tempPath(e.TempDir, ".m4a")
	err := ffmpeg.Input(trackPath, kw).Output(out, ffmpeg.KwArgs{
		"vn":  "",
		"c:a": "aac",
		"b:a": "192k",
	}).OverWriteOutput().Run()
	if err != nil {
		return nil, apperr.Wrap(apperr.EncodeFailure, err, "extracting audio segment from %s", trackPath)
	}
	return e.newClip(out)
}

// LoopToDuration tiles a segment seamlessly until it reaches exactly
// target seconds; the last tile is truncated.
func (e *Engine) LoopToDuration(segment *Clip, target float64) (*Clip, error) {
	out := tempPath(e.TempDir, ".m4a")
	err := ffmpeg.Input(segment.Path, ffmpeg.KwArgs{"stream_loop": -1}).Output(out, ffmpeg.KwArgs{
		"t":   target,
		"vn":  "",
		"c:a": "aac",
		"b:a": "192k",
	}).OverWriteOutput().Run()
	if err != nil {
		return nil, apperr.Wrap(apperr.EncodeFailure, err, "looping audio segment to %.3fs", target)
	}
	return e.newClip(out)
}

// TrimToDuration truncates a segment to exactly target seconds.
func (e *Engine) TrimToDuration(segment *Clip, target float64) (*Clip, error) {
	out := tempPath(e.TempDir, ".m4a")
	err := ffmpeg.Input(segment.Path).
		Filter("atrim", ffmpeg.Args{"0:" + ftoa(target)}).
		Output(out, ffmpeg.KwArgs{
			"vn":  "",
			"c:a": "aac",
			"b:a": "192k",
		}).OverWriteOutput().Run()
	if err != nil {
		return nil, apperr.Wrap(apperr.EncodeFailure, err, "truncating audio segment to %.3fs", target)
	}
	return e.newClip(out)
}

// Mux writes the final container: the visual timeline re-encoded at the
// requested frame rate plus the bound audio, if any.
func (e *Engine) Mux(visual *Clip, audio *Clip, outPath string, fps int) error {
	outKw := ffmpeg.KwArgs{
		"c:v":     "libx264",
		"preset":  "medium",
		"pix_fmt": "yuv420p",
		"r":       fps,
		"threads": 4,
	}

	var err error
	if audio != nil {
		outKw["c:a"] = "aac"
		outKw["b:a"] = "192k"
		outKw["shortest"] = ""
		v := ffmpeg.Input(visual.Path)
		a := ffmpeg.Input(audio.Path)
		err = ffmpeg.Output([]*ffmpeg.Stream{v, a}, outPath, outKw).OverWriteOutput().Run()
	} else {
		outKw["an"] = ""
		err = ffmpeg.Input(visual.Path).Output(outPath, outKw).OverWriteOutput().Run()
	}
	if err != nil {
		return apperr.Wrap(apperr.EncodeFailure, err, "writing final video %s", outPath)
	}
	e.Log.Debug("final video written", zap.String("path", outPath))
	return nil
}

// ExtractAudio pulls the audio track out of a video file into an mp3.
func (e *Engine) ExtractAudio(videoPath, outPath string) error {
	probe, err := ProbeFile(videoPath)
	if err != nil {
		return err
	}
	if !probe.HasAudio {
		return apperr.New(apperr.InvalidMedia, "the provided video file does not contain an audio track")
	}

	err = ffmpeg.Input(videoPath).Output(outPath, ffmpeg.KwArgs{
		"vn":  "",
		"c:a": "libmp3lame",
		"q:a": 2,
	}).OverWriteOutput().Run()
	if err != nil {
		return apperr.Wrap(apperr.EncodeFailure, err, "extracting audio from %s", videoPath)
	}
	return nil
}
