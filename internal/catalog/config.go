package catalog

import (
	"github.com/vovakirdan/touch-arcade/internal/device"
)

// Design-space and screen-floor constants shared by every game config.
const (
	DefaultDesignWidth  = 800.0
	DefaultDesignHeight = 600.0

	// Universal minimum screen box in CSS pixels. Screens smaller than
	// this cannot host any portal game.
	MinScreenWidth  = 320
	MinScreenHeight = 480
)

// GameConfig is the resolved runtime configuration handed to a host:
// the design surface, its scale mode, the touch control layout and the
// orientation preference.
type GameConfig struct {
	GameID      string
	Width       float64
	Height      float64
	Scale       ScaleMode
	Controls    []ControlSpec
	Orientation device.Orientation
	MinWidth    int
	MinHeight   int
}

// NewGameConfig builds a game config from a catalog adaptation.
// Zero or negative dimensions fall back to the 800×600 design default,
// an unset scale mode falls back to fit, and the minimum screen floor
// is always 320×480.
func NewGameConfig(gameID string, a Adaptation, width, height float64) GameConfig {
	if width <= 0 {
		width = DefaultDesignWidth
	}
	if height <= 0 {
		height = DefaultDesignHeight
	}

	scale := a.Scale
	switch scale {
	case ScaleFit, ScaleFill, ScaleStretch:
	default:
		scale = ScaleFit
	}

	return GameConfig{
		GameID:      gameID,
		Width:       width,
		Height:      height,
		Scale:       scale,
		Controls:    copyControls(a.Controls),
		Orientation: a.Orientation,
		MinWidth:    MinScreenWidth,
		MinHeight:   MinScreenHeight,
	}
}
