package pipeline

import (
	"math"
	"testing"

	"media-studio/media"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClampTransition(t *testing.T) {
	tests := []struct {
		name       string
		transition float64
		duration   float64
		want       float64
	}{
		{"zero passes through", 0, 3, 0},
		{"negative treated as zero", -1, 3, 0},
		{"short transition unchanged", 1, 3, 1},
		{"half duration clamps", 1.5, 3, 1.5},
		{"over half clamps to half", 2.5, 3, 1.5},
		{"clamp floored at minimum", 0.5, 0.1, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampTransition(tt.transition, tt.duration)
			if !almost(got, tt.want) {
				t.Errorf("ClampTransition(%v, %v) = %v, want %v", tt.transition, tt.duration, got, tt.want)
			}
		})
	}
}

func TestTimelineDuration(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		duration   float64
		transition float64
		want       float64
	}{
		{"no slides", 0, 3, 1, 0},
		{"single slide has no overlap", 1, 3, 1, 3},
		{"three slides with one second fades", 3, 3, 1, 7},
		{"no transition means simple sum", 4, 2, 0, 8},
		{"transition clamped before subtracting", 2, 2, 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimelineDuration(tt.count, tt.duration, tt.transition)
			if !almost(got, tt.want) {
				t.Errorf("TimelineDuration(%d, %v, %v) = %v, want %v", tt.count, tt.duration, tt.transition, got, tt.want)
			}
		})
	}
}

func TestXfadeSteps(t *testing.T) {
	steps := XfadeSteps(3, 3, 1)
	want := []media.XfadeStep{
		{Duration: 1, Offset: 2},
		{Duration: 1, Offset: 4},
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i := range want {
		if !almost(steps[i].Duration, want[i].Duration) || !almost(steps[i].Offset, want[i].Offset) {
			t.Errorf("step %d = %+v, want %+v", i, steps[i], want[i])
		}
	}

	if got := XfadeSteps(1, 3, 1); got != nil {
		t.Errorf("XfadeSteps for a single slide = %v, want nil", got)
	}
}

func TestXfadeStepsLastOffsetMatchesTimeline(t *testing.T) {
	const count, duration, transition = 4, 2.5, 0.8
	steps := XfadeSteps(count, duration, transition)
	total := TimelineDuration(count, duration, transition)
	last := steps[len(steps)-1]
	// The final slide enters at the last offset and plays out in full.
	if got := last.Offset + duration; !almost(got, total) {
		t.Errorf("timeline ends at %v but TimelineDuration is %v", got, total)
	}
}

func intp(i int) *int { return &i }

func TestOverlayWindows(t *testing.T) {
	total := TimelineDuration(3, 3, 1) // 7s

	tests := []struct {
		name      string
		spec      OverlaySpec
		wantStart float64
		wantEnd   float64
		dropped   bool
	}{
		{"global spans timeline", OverlaySpec{Text: "a"}, 0, total, false},
		{"first slide starts at zero", OverlaySpec{Text: "a", ImageIndex: intp(0)}, 0, 3, false},
		{"second slide offset by effective duration", OverlaySpec{Text: "a", ImageIndex: intp(1)}, 2, 5, false},
		{"last slide clipped to timeline end", OverlaySpec{Text: "a", ImageIndex: intp(2)}, 4, 7, false},
		{"negative index dropped", OverlaySpec{Text: "a", ImageIndex: intp(-1)}, 0, 0, true},
		{"out of range index dropped", OverlaySpec{Text: "a", ImageIndex: intp(3)}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows := OverlayWindows([]OverlaySpec{tt.spec}, 3, 3, 1, total)
			if tt.dropped {
				if len(windows) != 0 {
					t.Fatalf("got %d windows, want 0", len(windows))
				}
				return
			}
			if len(windows) != 1 {
				t.Fatalf("got %d windows, want 1", len(windows))
			}
			w := windows[0]
			if !almost(w.Start, tt.wantStart) || !almost(w.End, tt.wantEnd) {
				t.Errorf("window = [%v, %v], want [%v, %v]", w.Start, w.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestOverlayWindowsPreserveOrder(t *testing.T) {
	specs := []OverlaySpec{
		{Text: "second slide", ImageIndex: intp(1)},
		{Text: "everywhere"},
		{Text: "first slide", ImageIndex: intp(0)},
	}
	windows := OverlayWindows(specs, 3, 3, 1, 7)
	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}
	for i, spec := range specs {
		if windows[i].Spec.Text != spec.Text {
			t.Errorf("window %d is %q, want %q", i, windows[i].Spec.Text, spec.Text)
		}
	}
}

func TestSelectAnimation(t *testing.T) {
	global := OverlaySpec{Text: "a"}
	bound := OverlaySpec{Text: "a", ImageIndex: intp(0)}

	tests := []struct {
		name    string
		enabled bool
		specs   []OverlaySpec
		want    media.Animation
	}{
		{"disabled", false, []OverlaySpec{global}, media.AnimationNone},
		{"single global text rotates", true, []OverlaySpec{global}, media.AnimationRotate},
		{"no text pans", true, nil, media.AnimationPan},
		{"bound text pans", true, []OverlaySpec{bound}, media.AnimationPan},
		{"multiple texts pan", true, []OverlaySpec{global, global}, media.AnimationPan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectAnimation(tt.enabled, tt.specs); got != tt.want {
				t.Errorf("SelectAnimation(%v, %d specs) = %v, want %v", tt.enabled, len(tt.specs), got, tt.want)
			}
		})
	}
}

func TestPlanAudio(t *testing.T) {
	tests := []struct {
		name    string
		segment float64
		target  float64
		want    AudioAction
	}{
		{"empty segment is silent", 0, 7, AudioSilent},
		{"short segment loops", 3, 7, AudioLoop},
		{"long segment trims", 10, 7, AudioTrim},
		{"exact segment kept", 7, 7, AudioKeep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlanAudio(tt.segment, tt.target); got != tt.want {
				t.Errorf("PlanAudio(%v, %v) = %v, want %v", tt.segment, tt.target, got, tt.want)
			}
		})
	}
}
