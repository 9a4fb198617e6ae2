// Package pipeline builds slideshow videos: per-image slides, a
// cross-faded timeline, composited text layers and a bound audio
// segment, written out through the external encoder. Each run owns a
// private set of intermediate clips, released in reverse-acquisition
// order on every exit path.
package pipeline

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"media-studio/apperr"
	"media-studio/media"
	"media-studio/render"
)

// Request describes one slideshow build with all paths already resolved.
type Request struct {
	ImagePaths       []string
	AudioPath        string
	OutputPath       string
	Width            int
	Height           int
	ImageDuration    float64
	Transition       float64
	MusicStart       float64
	SegmentLength    *float64
	FPS              int
	Texts            []OverlaySpec
	EnableAnimations bool
}

// Pipeline sequences slide building, timeline assembly, text compositing
// and audio binding over the media engine.
type Pipeline struct {
	Media *media.Engine
	Text  *render.Renderer
	Log   *zap.Logger
}

// New wires a pipeline.
func New(engine *media.Engine, text *render.Renderer, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{Media: engine, Text: text, Log: log}
}

func (p *Pipeline) validate(req Request) error {
	if len(req.ImagePaths) == 0 {
		return apperr.New(apperr.InvalidInput, "no images supplied")
	}
	if req.ImageDuration <= 0 {
		return apperr.New(apperr.InvalidInput, "image display duration must be positive")
	}
	if req.Transition < 0 {
		return apperr.New(apperr.InvalidInput, "transition duration must not be negative")
	}
	if req.FPS <= 0 {
		return apperr.New(apperr.InvalidInput, "fps must be positive")
	}
	if req.Width <= 0 || req.Height <= 0 {
		return apperr.New(apperr.InvalidInput, "invalid canvas size %dx%d", req.Width, req.Height)
	}
	return nil
}

// checkAudioSource fails fast on a missing, unreadable or empty track
// before any clip is opened.
func checkAudioSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return apperr.Wrap(apperr.InvalidMedia, err, "audio file does not exist at path %s", path)
	}
	if info.Size() == 0 {
		return apperr.New(apperr.InvalidMedia, "audio file is empty at path %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return apperr.Wrap(apperr.InvalidMedia, err, "audio file is not readable at path %s", path)
	}
	f.Close()
	return nil
}

// gate validates an intermediate clip: positive duration and, for video
// stages, the expected canvas size.
func gate(stage string, c *media.Clip, wantW, wantH int) error {
	if c == nil || c.Duration <= 0 {
		return apperr.New(apperr.InvalidMedia, "%s produced a clip with no duration", stage)
	}
	if wantW > 0 && (c.Width != wantW || c.Height != wantH) {
		return apperr.New(apperr.InvalidMedia, "%s produced %dx%d, expected %dx%d",
			stage, c.Width, c.Height, wantW, wantH)
	}
	return nil
}

// Run executes the full pipeline and writes the final video to
// req.OutputPath. Every intermediate resource is released before Run
// returns, whichever stage fails.
func (p *Pipeline) Run(req Request) (err error) {
	if err := p.validate(req); err != nil {
		return err
	}
	if err := checkAudioSource(req.AudioPath); err != nil {
		return err
	}

	var rel media.Releaser
	defer rel.ReleaseAll()

	animation := SelectAnimation(req.EnableAnimations, req.Texts)
	n := len(req.ImagePaths)
	total := TimelineDuration(n, req.ImageDuration, req.Transition)

	p.Log.Info("pipeline started",
		zap.Int("images", n),
		zap.Float64("total_duration", total),
		zap.String("animation", string(animation)))

	// Stage 1: per-image slides.
	slides := make([]*media.Clip, 0, n)
	for i, imgPath := range req.ImagePaths {
		slide, err := p.Media.RenderSlide(media.SlideSpec{
			ImagePath: imgPath,
			Width:     req.Width,
			Height:    req.Height,
			Duration:  req.ImageDuration,
			FPS:       req.FPS,
			Animation: animation,
		})
		if err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
		rel.Track(slide)
		if err := gate(fmt.Sprintf("slide %d", i), slide, req.Width, req.Height); err != nil {
			return err
		}
		slides = append(slides, slide)
	}

	// Stage 2: cross-faded timeline.
	timeline := slides[0]
	if n > 1 {
		tl, err := p.Media.CrossfadeConcat(slides, XfadeSteps(n, req.ImageDuration, req.Transition), req.FPS)
		if err != nil {
			return err
		}
		timeline = rel.Track(tl)
	}
	if err := gate("timeline", timeline, req.Width, req.Height); err != nil {
		return err
	}

	// Stage 3: text layers.
	visual := timeline
	windows := OverlayWindows(req.Texts, n, req.ImageDuration, req.Transition, total)
	if len(windows) > 0 {
		layers := make([]media.OverlayLayer, 0, len(windows))
		for _, w := range windows {
			layer := media.NewFileHandle(p.Media.TempFile(".png"))
			if err := p.Text.RenderToFile(w.Spec.Text, req.Width, req.Height, w.Spec.Style, w.Spec.Position, layer.Path); err != nil {
				return apperr.Wrap(apperr.Internal, err, "rendering text layer %q", w.Spec.Text)
			}
			rel.Track(layer)
			layers = append(layers, media.OverlayLayer{Path: layer.Path, Start: w.Start, End: w.End})
		}

		composited, err := p.Media.OverlayLayers(timeline, layers, total, req.FPS)
		if err != nil {
			return err
		}
		visual = rel.Track(composited)
		if err := gate("text composite", visual, req.Width, req.Height); err != nil {
			return err
		}
		p.Log.Info("text layers composited", zap.Int("layers", len(layers)))
	}

	// Stage 4: audio binding.
	bound, err := p.bindAudio(&rel, req, total)
	if err != nil {
		return err
	}

	// Stage 5: final render.
	if err := p.Media.Mux(visual, bound, req.OutputPath, req.FPS); err != nil {
		return err
	}
	final, err := media.ProbeFile(req.OutputPath)
	if err != nil {
		return err
	}
	if final.Duration <= 0 {
		return apperr.New(apperr.EncodeFailure, "final video has no duration")
	}

	p.Log.Info("pipeline finished",
		zap.String("output", req.OutputPath),
		zap.Float64("duration", final.Duration),
		zap.Bool("has_audio", bound != nil))
	return nil
}

// bindAudio extracts the requested music segment and loops or truncates
// it to exactly the timeline duration. Returns nil (silent video) for an
// empty segment.
func (p *Pipeline) bindAudio(rel *media.Releaser, req Request, total float64) (*media.Clip, error) {
	track, err := media.ProbeFile(req.AudioPath)
	if err != nil {
		return nil, err
	}
	if !track.HasAudio || track.Duration <= 0 {
		return nil, apperr.New(apperr.InvalidMedia, "audio file %s has no usable audio track", req.AudioPath)
	}
	if req.MusicStart >= track.Duration {
		return nil, apperr.New(apperr.InvalidInput,
			"invalid audio range: start time %.3fs is beyond the track duration %.3fs",
			req.MusicStart, track.Duration)
	}

	segment, err := p.Media.ExtractSegment(req.AudioPath, req.MusicStart, req.SegmentLength)
	if err != nil {
		return nil, err
	}
	rel.Track(segment)

	switch PlanAudio(segment.Duration, total) {
	case AudioSilent:
		p.Log.Info("empty audio segment, rendering silent video")
		return nil, nil
	case AudioLoop:
		looped, err := p.Media.LoopToDuration(segment, total)
		if err != nil {
			return nil, err
		}
		rel.Track(looped)
		if err := gate("looped audio", looped, 0, 0); err != nil {
			return nil, err
		}
		return looped, nil
	case AudioTrim:
		trimmed, err := p.Media.TrimToDuration(segment, total)
		if err != nil {
			return nil, err
		}
		rel.Track(trimmed)
		if err := gate("truncated audio", trimmed, 0, 0); err != nil {
			return nil, err
		}
		return trimmed, nil
	default:
		// Segment already matches the timeline; bind it directly. The
		// releaser tracks handles, so the alias closes once.
		return segment, nil
	}
}
