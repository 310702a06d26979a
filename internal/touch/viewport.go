package touch

import (
	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/device"
)

// fitSafety shrinks a fit-mode viewport once more when rounding would
// otherwise let the scaled box spill past the screen edge.
const fitSafety = 0.95

// Viewport describes where the design surface lands on the screen.
// Width and Height are the scaled surface box in screen pixels, offset
// so the box is centered; under fill the offsets go negative.
type Viewport struct {
	Width   float64
	Height  float64
	Scale   float64 // uniform scale, 1 under stretch
	ScaleX  float64 // per-axis scales, equal except under stretch
	ScaleY  float64
	OffsetX float64
	OffsetY float64

	Orientation device.Orientation
}

// ComputeViewport maps a game's design surface onto a screen box.
// Pure: the same config and screen always produce the same viewport.
//
//	fit     uniform scale, whole surface visible, letterboxed
//	fill    uniform scale, surface covers the screen, edges cropped
//	stretch non-uniform, surface forced to the exact screen box
//
// Degenerate screens yield an identity viewport.
func ComputeViewport(cfg catalog.GameConfig, screenW, screenH int) Viewport {
	dw, dh := cfg.Width, cfg.Height
	if dw <= 0 {
		dw = catalog.DefaultDesignWidth
	}
	if dh <= 0 {
		dh = catalog.DefaultDesignHeight
	}

	sw, sh := float64(screenW), float64(screenH)
	if sw <= 0 || sh <= 0 {
		return Viewport{
			Width: dw, Height: dh,
			Scale: 1, ScaleX: 1, ScaleY: 1,
			Orientation: device.Portrait,
		}
	}

	orientation := device.Portrait
	if screenW > screenH {
		orientation = device.Landscape
	}

	var w, h, s, sx, sy float64
	switch cfg.Scale {
	case catalog.ScaleFill:
		s = core.MaxF(sw/dw, sh/dh)
		w, h = dw*s, dh*s
		sx, sy = s, s
	case catalog.ScaleStretch:
		sx, sy = sw/dw, sh/dh
		s = 1
		w, h = sw, sh
	default: // fit
		s = core.MinF(sw/dw, sh/dh)
		if dw*s > sw || dh*s > sh {
			s *= fitSafety
		}
		w, h = dw*s, dh*s
		sx, sy = s, s
	}

	return Viewport{
		Width:       w,
		Height:      h,
		Scale:       s,
		ScaleX:      sx,
		ScaleY:      sy,
		OffsetX:     (sw - w) / 2,
		OffsetY:     (sh - h) / 2,
		Orientation: orientation,
	}
}

// SurfaceRect returns the scaled surface box in screen coordinates.
func (v Viewport) SurfaceRect() core.Rect {
	return core.Rect{X: v.OffsetX, Y: v.OffsetY, W: v.Width, H: v.Height}
}

// ToScreen converts a design-space point to screen coordinates.
func (v Viewport) ToScreen(p core.Point) core.Point {
	return core.Point{
		X: v.OffsetX + p.X*v.ScaleX,
		Y: v.OffsetY + p.Y*v.ScaleY,
	}
}

// ToDesign converts a screen point back to design coordinates.
func (v Viewport) ToDesign(p core.Point) core.Point {
	sx, sy := v.ScaleX, v.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return core.Point{
		X: (p.X - v.OffsetX) / sx,
		Y: (p.Y - v.OffsetY) / sy,
	}
}

// ControlRect places a control's design box on the screen.
func (v Viewport) ControlRect(spec catalog.ControlSpec) core.Rect {
	tl := v.ToScreen(spec.Pos)
	return core.Rect{
		X: tl.X,
		Y: tl.Y,
		W: spec.Size.W * v.ScaleX,
		H: spec.Size.H * v.ScaleY,
	}
}
