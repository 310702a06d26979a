package catalog

import (
	"testing"

	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/device"
)

func mustLoad(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return c
}

func TestLookupKnownGame(t *testing.T) {
	c := mustLoad(t)

	a := c.Lookup("box-jump", device.Profile{})

	if a.Orientation != device.Landscape {
		t.Errorf("Orientation = %s, expected landscape", a.Orientation)
	}
	if a.Scale != ScaleFit {
		t.Errorf("Scale = %s, expected fit", a.Scale)
	}
	if len(a.Controls) != 2 {
		t.Fatalf("len(Controls) = %d, expected 2", len(a.Controls))
	}
	if a.Controls[0].Kind != ControlJoystick {
		t.Errorf("first control kind = %s, expected joystick", a.Controls[0].Kind)
	}
	if a.Controls[1].Keys[0] != core.KeySpace {
		t.Errorf("jump key = %s, expected Space", a.Controls[1].Keys[0])
	}
}

func TestLookupUnknownGameGetsDefault(t *testing.T) {
	c := mustLoad(t)

	a := c.Lookup("zzz-not-real", device.Profile{})

	if len(a.Controls) != 2 {
		t.Fatalf("default scheme has %d controls, expected 2", len(a.Controls))
	}
	if a.Controls[0].Kind != ControlJoystick {
		t.Errorf("default first control = %s, expected joystick", a.Controls[0].Kind)
	}
	if a.Controls[1].Kind != ControlButton {
		t.Errorf("default second control = %s, expected button", a.Controls[1].Kind)
	}
	if a.Scale != ScaleFit {
		t.Errorf("default scale = %s, expected fit", a.Scale)
	}
	if a.Orientation != "" {
		t.Errorf("default orientation = %q, expected any", a.Orientation)
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	c := mustLoad(t)

	a := c.Lookup("box-jump", device.Profile{})
	a.Controls[0].Pos.X = -999
	a.Controls[0].Keys[0] = "Mutated"

	fresh := c.Lookup("box-jump", device.Profile{})
	if fresh.Controls[0].Pos.X == -999 {
		t.Error("mutating a lookup result changed the table")
	}
	if fresh.Controls[0].Keys[0] == "Mutated" {
		t.Error("mutating a lookup result's keys changed the table")
	}
}

func TestLookupTabletScaling(t *testing.T) {
	c := mustLoad(t)

	phone := c.Lookup("box-jump", device.Profile{Mobile: true})
	tablet := c.Lookup("box-jump", device.Profile{Tablet: true})

	if tablet.Controls[0].Size.W <= phone.Controls[0].Size.W {
		t.Errorf("tablet control width %v not larger than phone %v",
			tablet.Controls[0].Size.W, phone.Controls[0].Size.W)
	}

	// Scaled boxes must stay inside the design surface.
	for _, ctl := range tablet.Controls {
		if ctl.Pos.X < 0 || ctl.Pos.Y < 0 {
			t.Errorf("control %s scaled off the top-left edge: %+v", ctl.ID, ctl.Pos)
		}
		if ctl.Pos.X+ctl.Size.W > DefaultDesignWidth+0.001 {
			t.Errorf("control %s scaled past the right edge", ctl.ID)
		}
		if ctl.Pos.Y+ctl.Size.H > DefaultDesignHeight+0.001 {
			t.Errorf("control %s scaled past the bottom edge", ctl.ID)
		}
	}
}

func TestGamesSorted(t *testing.T) {
	c := mustLoad(t)

	ids := c.Games()
	if len(ids) == 0 {
		t.Fatal("catalog has no games")
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("Games() not sorted: %q before %q", ids[i-1], ids[i])
		}
	}
	if !c.Has("box-jump") {
		t.Error("Has(box-jump) = false")
	}
	if c.Has("zzz-not-real") {
		t.Error("Has(zzz-not-real) = true")
	}
}

func TestNewGameConfigDefaults(t *testing.T) {
	c := mustLoad(t)
	a := c.Lookup("box-jump", device.Profile{})

	cfg := NewGameConfig("box-jump", a, 0, 0)

	if cfg.Width != DefaultDesignWidth || cfg.Height != DefaultDesignHeight {
		t.Errorf("design box = %vx%v, expected %vx%v",
			cfg.Width, cfg.Height, DefaultDesignWidth, DefaultDesignHeight)
	}
	if cfg.MinWidth != MinScreenWidth || cfg.MinHeight != MinScreenHeight {
		t.Errorf("min screen = %dx%d, expected %dx%d",
			cfg.MinWidth, cfg.MinHeight, MinScreenWidth, MinScreenHeight)
	}
	if cfg.GameID != "box-jump" {
		t.Errorf("GameID = %q", cfg.GameID)
	}
	if len(cfg.Controls) != len(a.Controls) {
		t.Errorf("controls not carried over")
	}
}

func TestNewGameConfigExplicitDims(t *testing.T) {
	cfg := NewGameConfig("quick-tap", Adaptation{}, 1024, 768)

	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("design box = %vx%v, expected 1024x768", cfg.Width, cfg.Height)
	}
	if cfg.Scale != ScaleFit {
		t.Errorf("unset scale mode = %s, expected fit fallback", cfg.Scale)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load("/nonexistent/catalog.yaml"); err == nil {
		t.Error("expected error for missing custom path")
	}
}

func TestBuiltinFallback(t *testing.T) {
	c := Builtin()

	if !c.Has("box-jump") {
		t.Error("builtin table should know box-jump")
	}
	a := c.Lookup("anything-else", device.Profile{})
	if len(a.Controls) == 0 {
		t.Error("builtin default scheme is empty")
	}
}
