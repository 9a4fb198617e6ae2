package pipeline

import "media-studio/media"

// Timing plan for a slideshow build. Everything here is pure arithmetic
// computed before any rendering starts, and the same formulas drive both
// the visual cross-fades and text overlay placement so the two can never
// drift apart.

// minTransition is the floor applied when a transition has to be clamped
// against a short slide.
const minTransition = 0.1

// ClampTransition limits a cross-fade to half the slide it fades out of.
// A transition of at least half the slide duration becomes half the
// duration, floored at minTransition; shorter transitions pass through.
func ClampTransition(transition, slideDuration float64) float64 {
	if transition <= 0 {
		return 0
	}
	if transition >= slideDuration*0.5 {
		c := slideDuration * 0.5
		if c < minTransition {
			c = minTransition
		}
		return c
	}
	return transition
}

// TimelineDuration is the sum of slide display durations minus the
// clamped overlap of each transition between consecutive slides.
func TimelineDuration(slideCount int, slideDuration, transition float64) float64 {
	if slideCount <= 0 {
		return 0
	}
	total := float64(slideCount) * slideDuration
	overlap := ClampTransition(transition, slideDuration)
	total -= float64(slideCount-1) * overlap
	return total
}

// XfadeSteps returns the n-1 cross-fade steps for n slides: each step's
// clamped fade duration and its offset into the accumulated timeline.
func XfadeSteps(slideCount int, slideDuration, transition float64) []media.XfadeStep {
	if slideCount < 2 {
		return nil
	}
	clamp := ClampTransition(transition, slideDuration)
	steps := make([]media.XfadeStep, 0, slideCount-1)
	running := slideDuration
	for i := 1; i < slideCount; i++ {
		steps = append(steps, media.XfadeStep{Duration: clamp, Offset: running - clamp})
		running += slideDuration - clamp
	}
	return steps
}

// OverlaySpec is one requested text overlay.
type OverlaySpec struct {
	Text       string
	Style      string
	Position   string
	ImageIndex *int
}

// OverlayWindow is an overlay with its resolved display interval.
type OverlayWindow struct {
	Spec  OverlaySpec
	Start float64
	End   float64
}

// OverlayWindows resolves each overlay's interval within the timeline.
// An overlay bound to slide k starts at the cumulative effective duration
// of slides 0..k-1 (each reduced by the clamped transition that follows
// it) and lasts the slide's display duration. Global overlays span the
// whole timeline. Windows are clipped at the timeline end; overlays
// clipped to nothing or bound to an out-of-range index are dropped.
func OverlayWindows(specs []OverlaySpec, slideCount int, slideDuration, transition, total float64) []OverlayWindow {
	clamp := ClampTransition(transition, slideDuration)
	var windows []OverlayWindow

	for _, spec := range specs {
		start := 0.0
		end := total

		if spec.ImageIndex != nil {
			idx := *spec.ImageIndex
			if idx < 0 || idx >= slideCount {
				continue
			}
			for k := 0; k < idx; k++ {
				eff := slideDuration
				if k < slideCount-1 {
					eff -= clamp
				}
				start += eff
			}
			end = start + slideDuration
		}

		if end > total {
			end = total
		}
		if end-start <= 0 {
			continue
		}
		windows = append(windows, OverlayWindow{Spec: spec, Start: start, End: end})
	}
	return windows
}

// SelectAnimation picks the slide animation: rotate only when animations
// are enabled and exactly one global overlay is requested, otherwise pan
// for every slide.
func SelectAnimation(enabled bool, specs []OverlaySpec) media.Animation {
	if !enabled {
		return media.AnimationNone
	}
	if len(specs) == 1 && specs[0].ImageIndex == nil {
		return media.AnimationRotate
	}
	return media.AnimationPan
}

// AudioAction is the adjustment applied to an extracted audio segment.
type AudioAction int

const (
	// AudioSilent binds no audio: the extracted segment was empty.
	AudioSilent AudioAction = iota
	// AudioLoop tiles the segment up to the timeline duration.
	AudioLoop
	// AudioTrim truncates the segment to the timeline duration.
	AudioTrim
	// AudioKeep binds the segment as-is: it already matches.
	AudioKeep
)

// PlanAudio decides how a segment of segmentDuration seconds becomes
// exactly target seconds.
func PlanAudio(segmentDuration, target float64) AudioAction {
	switch {
	case segmentDuration == 0:
		return AudioSilent
	case segmentDuration < target:
		return AudioLoop
	case segmentDuration > target:
		return AudioTrim
	default:
		return AudioKeep
	}
}
