package compat

import (
	"fmt"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/device"
	"github.com/vovakirdan/touch-arcade/internal/touch"
)

// Presentation hint keys passed to surfaces that implement Hinter.
const (
	HintMaxPixelRatio = "max_pixel_ratio"
	HintUIScale       = "ui_scale"
	HintRenderScale   = "render_scale"
)

// Hint values applied by the display and quality adaptations.
const (
	uiScaleFactor     = 0.8
	renderScaleFactor = 0.75
)

// Hinter is optionally implemented by surfaces that accept
// presentation hints (pixel-ratio clamps, UI and render scale
// factors). Surfaces without it simply skip those adaptations.
type Hinter interface {
	SetHint(key string, value float64)
}

// Adapt prepares one game for the current device: it re-runs the
// check, performs every identified adaptation against the surface and
// returns the game config the host should drive the adapter with.
//
// Per-adaptation failures are logged and skipped so one broken step
// never blocks the others; successful steps are marked Applied in the
// returned report. When the score stays below the fallback threshold,
// every derived fallback comes back enabled. The error return covers
// only the missing-surface case; unknown games succeed with defaults.
func (c *Checker) Adapt(gameID string, surface touch.Surface) (catalog.GameConfig, Report, error) {
	if surface == nil {
		return catalog.GameConfig{}, Report{}, fmt.Errorf("compat: cannot adapt %q without a surface: %w", gameID, touch.ErrNoSurface)
	}

	report := c.Check(gameID)
	cfg := catalog.NewGameConfig(gameID, c.cat.Lookup(gameID, report.Profile), 0, 0)

	for i := range report.Adaptations {
		ad := &report.Adaptations[i]
		if ad.Applied {
			continue
		}
		if err := c.applyAdaptation(ad.Kind, cfg, surface); err != nil {
			c.logger.Warn("adaptation skipped",
				"game", gameID,
				"kind", ad.Kind,
				"error", err,
			)
			continue
		}
		ad.Applied = true
	}

	if report.Score < fallbackThreshold {
		for i := range report.Fallbacks {
			report.Fallbacks[i].Enabled = true
		}
	}
	return cfg, report, nil
}

// AdaptControls attaches the game's touch control scheme to the
// surface without running the full adaptation pipeline. Hosts use it
// to re-establish controls after their own cleanup.
func (c *Checker) AdaptControls(gameID string, surface touch.Surface) (catalog.GameConfig, error) {
	if surface == nil {
		return catalog.GameConfig{}, fmt.Errorf("compat: cannot adapt %q without a surface: %w", gameID, touch.ErrNoSurface)
	}
	profile := device.Detect(c.snap())
	cfg := catalog.NewGameConfig(gameID, c.cat.Lookup(gameID, profile), 0, 0)
	if err := c.adapter.Attach(surface, cfg); err != nil {
		return catalog.GameConfig{}, err
	}
	if err := c.adapter.EnableGestures(); err != nil {
		return catalog.GameConfig{}, err
	}
	return cfg, nil
}

func (c *Checker) applyAdaptation(kind AdaptationKind, cfg catalog.GameConfig, surface touch.Surface) error {
	switch kind {
	case AdaptControls:
		if err := c.adapter.Attach(surface, cfg); err != nil {
			return err
		}
		return c.adapter.EnableGestures()
	case AdaptViewport:
		return applyHint(surface, HintMaxPixelRatio, maxUsefulPixelRatio)
	case AdaptUIScale:
		return applyHint(surface, HintUIScale, uiScaleFactor)
	case AdaptQuality:
		return applyHint(surface, HintRenderScale, renderScaleFactor)
	default:
		return fmt.Errorf("compat: unknown adaptation kind %q", kind)
	}
}

func applyHint(surface touch.Surface, key string, value float64) error {
	h, ok := surface.(Hinter)
	if !ok {
		return fmt.Errorf("compat: surface does not accept the %s hint", key)
	}
	h.SetHint(key, value)
	return nil
}
