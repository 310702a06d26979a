package compat

import (
	"errors"
	"testing"

	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/device"
	"github.com/vovakirdan/touch-arcade/internal/touch"
)

type nopInjector struct{}

func (nopInjector) Press(core.Key) error   { return nil }
func (nopInjector) Release(core.Key) error { return nil }

// hintSurface is a host surface that records presentation hints.
type hintSurface struct {
	w, h  int
	hints map[string]float64
}

func newHintSurface(w, h int) *hintSurface {
	return &hintSurface{w: w, h: h, hints: make(map[string]float64)}
}

func (s *hintSurface) Size() (int, int)                  { return s.w, s.h }
func (s *hintSurface) Injector() core.InputInjector      { return nopInjector{} }
func (s *hintSurface) SetHint(key string, value float64) { s.hints[key] = value }

// bareSurface accepts touch controls but no presentation hints.
type bareSurface struct {
	w, h int
}

func (s bareSurface) Size() (int, int)             { return s.w, s.h }
func (s bareSurface) Injector() core.InputInjector { return nopInjector{} }

func TestAdaptNilSurface(t *testing.T) {
	c := newTestChecker(t, smallPhoneSnapshot())

	_, _, err := c.Adapt("box-jump", nil)
	if !errors.Is(err, touch.ErrNoSurface) {
		t.Fatalf("Adapt(nil) error = %v, expected ErrNoSurface", err)
	}
	if c.Adapter().Attached() {
		t.Error("adapter attached after a failed Adapt")
	}
}

func TestAdaptAttachesControlsAndHints(t *testing.T) {
	c := newTestChecker(t, smallPhoneSnapshot())
	surface := newHintSurface(800, 600)

	cfg, report, err := c.Adapt("box-jump", surface)
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	if cfg.GameID != "box-jump" {
		t.Errorf("cfg.GameID = %q, expected %q", cfg.GameID, "box-jump")
	}
	if len(cfg.Controls) == 0 {
		t.Fatal("cfg.Controls is empty, expected the box-jump control scheme")
	}
	if !c.Adapter().Attached() {
		t.Error("adapter not attached after a controls adaptation")
	}
	if !c.Adapter().GesturesEnabled() {
		t.Error("gestures not enabled after a controls adaptation")
	}

	for _, a := range report.Adaptations {
		if !a.Applied {
			t.Errorf("adaptation %s not applied: %s", a.Kind, a.Message)
		}
	}
	if got := surface.hints[HintUIScale]; got != uiScaleFactor {
		t.Errorf("ui_scale hint = %v, expected %v", got, uiScaleFactor)
	}
	if _, ok := surface.hints[HintMaxPixelRatio]; ok {
		t.Error("max_pixel_ratio hint set for a pixel ratio already at the cap")
	}

	// Score 80 sits above the fallback threshold.
	for _, f := range report.Fallbacks {
		if f.Enabled {
			t.Errorf("fallback %s enabled at score %d", f.Kind, report.Score)
		}
	}
}

func TestAdaptEnablesFallbacksBelowThreshold(t *testing.T) {
	c := newTestChecker(t, lowEndAndroidSnapshot())
	surface := newHintSurface(800, 600)

	_, report, err := c.Adapt("tunnel-racer", surface)
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	if report.Score >= fallbackThreshold {
		t.Fatalf("Score = %d, expected below %d for this setup", report.Score, fallbackThreshold)
	}
	if len(report.Fallbacks) == 0 {
		t.Fatal("no fallbacks derived for a failing game")
	}
	for _, f := range report.Fallbacks {
		if !f.Enabled {
			t.Errorf("fallback %s not enabled at score %d", f.Kind, report.Score)
		}
	}
	if got := surface.hints[HintRenderScale]; got != renderScaleFactor {
		t.Errorf("render_scale hint = %v, expected %v", got, renderScaleFactor)
	}
}

func TestAdaptSkipsHintsOnBareSurface(t *testing.T) {
	c := newTestChecker(t, smallPhoneSnapshot())

	_, report, err := c.Adapt("box-jump", bareSurface{w: 800, h: 600})
	if err != nil {
		t.Fatalf("Adapt() error = %v, expected hint failures to be skipped", err)
	}

	if !c.Adapter().Attached() {
		t.Error("controls adaptation should still attach on a hint-less surface")
	}
	for _, a := range report.Adaptations {
		switch a.Kind {
		case AdaptControls:
			if !a.Applied {
				t.Error("controls adaptation not applied")
			}
		default:
			if a.Applied {
				t.Errorf("hint adaptation %s applied on a surface without SetHint", a.Kind)
			}
		}
	}
}

func TestAdaptUnknownGameUsesDefaults(t *testing.T) {
	snap := device.Snapshot{
		UserAgent:      "Mozilla/5.0 (Linux; Android 13; SM-G981B) AppleWebKit/537.36",
		ScreenW:        360,
		ScreenH:        800,
		PixelRatio:     3,
		MaxTouchPoints: 10,
		TouchEvents:    true,
		CPUCores:       8,
		MemoryMB:       8192,
		Accelerated3D:  true,
		Audio:          true,
	}
	c := newTestChecker(t, snap)
	surface := newHintSurface(800, 600)

	cfg, _, err := c.Adapt("zzz-not-real", surface)
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	if len(cfg.Controls) != 2 {
		t.Errorf("len(cfg.Controls) = %d, expected the 2-control default scheme", len(cfg.Controls))
	}
	if got := surface.hints[HintMaxPixelRatio]; got != maxUsefulPixelRatio {
		t.Errorf("max_pixel_ratio hint = %v, expected %v", got, maxUsefulPixelRatio)
	}
	if got := surface.hints[HintUIScale]; got != uiScaleFactor {
		t.Errorf("ui_scale hint = %v, expected %v", got, uiScaleFactor)
	}
}

func TestAdaptControls(t *testing.T) {
	c := newTestChecker(t, smallPhoneSnapshot())

	cfg, err := c.AdaptControls("box-jump", newHintSurface(800, 600))
	if err != nil {
		t.Fatalf("AdaptControls() error = %v", err)
	}
	if cfg.GameID != "box-jump" {
		t.Errorf("cfg.GameID = %q, expected %q", cfg.GameID, "box-jump")
	}
	if !c.Adapter().Attached() || !c.Adapter().GesturesEnabled() {
		t.Error("AdaptControls should attach the adapter with gestures enabled")
	}

	if _, err := c.AdaptControls("box-jump", nil); !errors.Is(err, touch.ErrNoSurface) {
		t.Errorf("AdaptControls(nil) error = %v, expected ErrNoSurface", err)
	}
}
