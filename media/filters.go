package media

import (
	"fmt"
	"strconv"
)

// Filter expression builders. Kept as pure functions so the generated
// ffmpeg expressions can be tested without invoking the encoder.

// ftoa formats a float the way ffmpeg expressions expect.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// coverScale returns the scale arguments that make the source fully cover
// a WxH canvas while preserving aspect ratio. Combined with a center crop
// this guarantees no letterboxing.
func coverScale(w, h int) string {
	return fmt.Sprintf("%d:%d", w, h)
}

// panYExpr oscillates the crop window vertically with a period equal to
// the slide duration and an amplitude of half the overflow height.
func panYExpr(duration float64) string {
	return fmt.Sprintf("(ih-oh)/2+((ih-oh)/2)*sin(2*PI*t/%s)", ftoa(duration))
}

// rotateExpr spins the content at 5 degrees per second.
func rotateExpr() string {
	return "5*PI/180*t"
}

// overlayEnableExpr limits an overlay layer to [start, end).
func overlayEnableExpr(start, end float64) string {
	return fmt.Sprintf("between(t,%s,%s)", ftoa(start), ftoa(end))
}
