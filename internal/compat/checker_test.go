package compat

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/device"
)

func smallPhoneSnapshot() device.Snapshot {
	return device.Snapshot{
		UserAgent:      "Mozilla/5.0 (iPhone; CPU iPhone OS 15_0 like Mac OS X) AppleWebKit/605.1.15",
		ScreenW:        320,
		ScreenH:        568,
		PixelRatio:     2,
		MaxTouchPoints: 5,
		TouchEvents:    true,
		CPUCores:       2,
		MemoryMB:       2048,
		Accelerated3D:  true,
		Audio:          true,
	}
}

func lowEndAndroidSnapshot() device.Snapshot {
	return device.Snapshot{
		UserAgent:      "Mozilla/5.0 (Linux; Android 9; SM-J260) AppleWebKit/537.36",
		ScreenW:        360,
		ScreenH:        640,
		PixelRatio:     1.5,
		MaxTouchPoints: 5,
		TouchEvents:    true,
		CPUCores:       4,
		MemoryMB:       1024,
		Accelerated3D:  false,
		Audio:          true,
	}
}

func desktopSnapshot() device.Snapshot {
	return device.Snapshot{
		UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		ScreenW:       1920,
		ScreenH:       1080,
		PixelRatio:    2,
		CPUCores:      8,
		MemoryMB:      8192,
		Accelerated3D: true,
		Audio:         true,
	}
}

func newTestChecker(t *testing.T, snap device.Snapshot, opts ...Option) *Checker {
	t.Helper()
	reqs, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	opts = append([]Option{
		WithLogger(log.New(io.Discard)),
		WithScheduler(core.NewManualScheduler()),
	}, opts...)
	return NewChecker(reqs, cat, func() device.Snapshot { return snap }, opts...)
}

func hasAdaptation(adaptations []AppliedAdaptation, kind AdaptationKind) bool {
	for _, a := range adaptations {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

func hasFallback(fallbacks []Fallback, kind FallbackKind) bool {
	for _, f := range fallbacks {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// A keyboard, landscape-only game on a small portrait phone: the
// canonical "playable with help" scenario.
func TestCheckBoxJumpOnSmallPhone(t *testing.T) {
	c := newTestChecker(t, smallPhoneSnapshot())

	r := c.Check("box-jump")

	if len(r.Issues) < 2 {
		t.Fatalf("Check() found %d issues, expected at least 2: %+v", len(r.Issues), r.Issues)
	}
	if !hasIssueKind(r.Issues, IssueControls) {
		t.Error("expected a controls issue for keyboard-on-mobile")
	}
	if !hasIssueKind(r.Issues, IssueDisplay) {
		t.Error("expected a display issue for the unsupported portrait orientation")
	}
	if !hasAdaptation(r.Adaptations, AdaptControls) {
		t.Error("expected a controls adaptation candidate")
	}
	if !hasAdaptation(r.Adaptations, AdaptUIScale) {
		t.Error("expected a UI-scale adaptation for the 320px screen")
	}

	// orientation 15 + keyboard 25 + low-end 15 = 55 off; controls and
	// ui-scale adaptations +20; controls, quality and offline
	// fallbacks +15.
	if r.Score != 80 {
		t.Errorf("Score = %d, expected 80", r.Score)
	}
	if !r.Compatible {
		t.Error("Compatible = false, expected true at score 80")
	}
	if r.Score >= 100 {
		t.Errorf("Score = %d, expected strictly below 100", r.Score)
	}
	if !hasFallback(r.Fallbacks, FallbackOffline) {
		t.Error("expected the offline fallback for an offline-capable game")
	}
	for _, f := range r.Fallbacks {
		if f.Enabled {
			t.Errorf("fallback %s enabled by Check, expected all disabled", f.Kind)
		}
	}
}

func TestCheckUnknownGameNeverFails(t *testing.T) {
	c := newTestChecker(t, smallPhoneSnapshot())

	r := c.Check("zzz-not-real")

	if r.Score < 0 || r.Score > 100 {
		t.Fatalf("Score = %d, expected within [0,100]", r.Score)
	}
	if !r.Compatible {
		t.Errorf("Compatible = false for a permissive unknown game, score %d", r.Score)
	}
	if hasIssueKind(r.Issues, IssueControls) {
		t.Error("permissive defaults should not raise controls issues")
	}
}

func TestCheckDesktopCleanPass(t *testing.T) {
	c := newTestChecker(t, desktopSnapshot())

	r := c.Check("box-jump")

	if len(r.Issues) != 0 {
		t.Errorf("Check() on desktop found issues: %+v", r.Issues)
	}
	if len(r.Adaptations) != 0 {
		t.Errorf("Check() on desktop proposed adaptations: %+v", r.Adaptations)
	}
	if r.Score != 100 {
		t.Errorf("Score = %d, expected 100", r.Score)
	}
	if !hasFallback(r.Fallbacks, FallbackOffline) {
		t.Error("offline fallback should be offered regardless of issues")
	}
}

func TestCheckHeavyGameOnLowEndDevice(t *testing.T) {
	c := newTestChecker(t, lowEndAndroidSnapshot())

	r := c.Check("tunnel-racer")

	// orientation 15, low-end 15, missing 3D 25, low memory 25,
	// keyboard-on-mobile 25 against quality+controls+ui-scale
	// adaptations +30 and controls+quality+simplified fallbacks +15.
	if r.Score != 40 {
		t.Errorf("Score = %d, expected 40", r.Score)
	}
	if r.Compatible {
		t.Error("Compatible = true, expected false at score 40")
	}
	if !hasIssueKind(r.Issues, IssueFeatures) {
		t.Error("expected a features issue for missing 3D support")
	}
	if !hasAdaptation(r.Adaptations, AdaptQuality) {
		t.Error("expected a quality adaptation for a heavy game on a low-end device")
	}
	if !hasFallback(r.Fallbacks, FallbackSimplified) {
		t.Error("expected the simplified-mode fallback from the features issue")
	}
	if hasFallback(r.Fallbacks, FallbackOffline) {
		t.Error("tunnel-racer is not offline-capable")
	}
}

func TestScreenFloorUsesAllowedOrientations(t *testing.T) {
	landscapeOnly := Requirements{
		MinWidth:     480,
		MinHeight:    320,
		Orientations: []device.Orientation{device.Landscape},
	}

	tests := []struct {
		name    string
		screenW int
		screenH int
		fits    bool
	}{
		{name: "portrait phone fits rotated", screenW: 320, screenH: 568, fits: true},
		{name: "tiny screen fails either way", screenW: 300, screenH: 400, fits: false},
		{name: "landscape screen fits directly", screenW: 640, screenH: 360, fits: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := device.Profile{ScreenW: tt.screenW, ScreenH: tt.screenH}
			if got := screenFitsFloor(landscapeOnly, p); got != tt.fits {
				t.Errorf("screenFitsFloor(%dx%d) = %v, expected %v", tt.screenW, tt.screenH, got, tt.fits)
			}
		})
	}
}

func TestLowEndHeuristic(t *testing.T) {
	tests := []struct {
		name   string
		w      int
		ratio  float64
		cores  int
		lowEnd bool
	}{
		{name: "narrow screen", w: 640, ratio: 3, cores: 8, lowEnd: true},
		{name: "low pixel ratio", w: 1920, ratio: 1, cores: 8, lowEnd: true},
		{name: "few cores", w: 1920, ratio: 2, cores: 2, lowEnd: true},
		{name: "capable device", w: 1920, ratio: 2, cores: 8, lowEnd: false},
		{name: "unknown cores are not low-end", w: 1920, ratio: 2, cores: 0, lowEnd: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := device.Profile{ScreenW: tt.w, PixelRatio: tt.ratio}
			snap := device.Snapshot{CPUCores: tt.cores}
			if got := lowEnd(p, snap); got != tt.lowEnd {
				t.Errorf("lowEnd() = %v, expected %v", got, tt.lowEnd)
			}
		})
	}
}

func TestScoreOf(t *testing.T) {
	crit := Issue{Severity: SeverityCritical}
	high := Issue{Severity: SeverityHigh}

	tests := []struct {
		name      string
		issues    []Issue
		adapts    int
		fallbacks int
		want      int
	}{
		{name: "clean", want: 100},
		{name: "one critical", issues: []Issue{crit}, want: 60},
		{name: "floor clamp", issues: []Issue{crit, crit, crit}, want: 0},
		{name: "ceiling clamp", adapts: 5, fallbacks: 2, want: 100},
		{name: "bonuses offset penalties", issues: []Issue{high}, adapts: 1, fallbacks: 1, want: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreOf(tt.issues, tt.adapts, tt.fallbacks); got != tt.want {
				t.Errorf("scoreOf() = %d, expected %d", got, tt.want)
			}
		})
	}
}

func TestSeverityString(t *testing.T) {
	pairs := map[Severity]string{
		SeverityLow:      "low",
		SeverityMedium:   "medium",
		SeverityHigh:     "high",
		SeverityCritical: "critical",
	}
	for s, want := range pairs {
		if s.String() != want {
			t.Errorf("Severity(%d).String() = %q, expected %q", s, s.String(), want)
		}
	}
}

// Property-based test: more issues never raise the score, more
// adaptations or fallbacks never lower it.
func TestScorePropertyMonotonicity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	buildIssues := func(low, med, high, crit int) []Issue {
		var issues []Issue
		for i := 0; i < low; i++ {
			issues = append(issues, Issue{Severity: SeverityLow})
		}
		for i := 0; i < med; i++ {
			issues = append(issues, Issue{Severity: SeverityMedium})
		}
		for i := 0; i < high; i++ {
			issues = append(issues, Issue{Severity: SeverityHigh})
		}
		for i := 0; i < crit; i++ {
			issues = append(issues, Issue{Severity: SeverityCritical})
		}
		return issues
	}

	properties.Property("score is monotone in issues and bonuses", prop.ForAll(
		func(low, med, high, crit, adapts, fallbacks int) bool {
			issues := buildIssues(low, med, high, crit)
			base := scoreOf(issues, adapts, fallbacks)

			for _, extra := range []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical} {
				worse := scoreOf(append(issues, Issue{Severity: extra}), adapts, fallbacks)
				if worse > base {
					return false
				}
			}
			if scoreOf(issues, adapts+1, fallbacks) < base {
				return false
			}
			if scoreOf(issues, adapts, fallbacks+1) < base {
				return false
			}
			return true
		},
		gen.IntRange(0, 4),
		gen.IntRange(0, 4),
		gen.IntRange(0, 4),
		gen.IntRange(0, 4),
		gen.IntRange(0, 5),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}
