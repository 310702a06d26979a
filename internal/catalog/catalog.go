// Package catalog holds the per-game touch adaptation table: which
// on-screen controls a game gets and how its surface scales. The table
// is plain data loaded once at startup; lookups are pure and unknown
// games fall back to a generic scheme instead of failing.
package catalog

import (
	"sort"

	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/device"
)

// ControlKind names the interaction model of an on-screen control.
type ControlKind string

const (
	ControlButton   ControlKind = "button"
	ControlJoystick ControlKind = "joystick"
	ControlSwipe    ControlKind = "swipe"
	ControlTap      ControlKind = "tap"
)

// ScaleMode selects how a game surface maps onto the screen box.
type ScaleMode string

const (
	ScaleFit     ScaleMode = "fit"     // uniform, fully visible, letterboxed
	ScaleFill    ScaleMode = "fill"    // uniform, covers screen, edges cropped
	ScaleStretch ScaleMode = "stretch" // non-uniform, exact screen box
)

// ControlSpec describes one overlay control in design coordinates.
// For joystick and swipe controls Keys is ordered [up, down, left,
// right]; button and tap controls use Keys[0].
type ControlSpec struct {
	ID    string      `yaml:"id"`
	Kind  ControlKind `yaml:"kind"`
	Pos   core.Point  `yaml:"pos"`
	Size  core.Size   `yaml:"size"`
	Keys  []core.Key  `yaml:"keys"`
	Label string      `yaml:"label"`
}

// Adaptation is one catalog row: the touch scheme for a single game.
// An empty Orientation means the game runs in either orientation.
type Adaptation struct {
	Controls    []ControlSpec      `yaml:"controls"`
	Orientation device.Orientation `yaml:"orientation"`
	Scale       ScaleMode          `yaml:"scale"`
}

// Catalog is the loaded adaptation table.
type Catalog struct {
	games map[string]Adaptation
	def   Adaptation
}

// Lookup returns the adaptation for a game, falling back to the generic
// default scheme for unknown ids. The result is a copy; mutating it
// does not touch the table. Tablet profiles get the same layout with
// control boxes enlarged, since fingers obscure less of a big screen
// but targets sit further apart.
func (c *Catalog) Lookup(gameID string, p device.Profile) Adaptation {
	a, ok := c.games[gameID]
	if !ok {
		a = c.def
	}
	a.Controls = copyControls(a.Controls)

	if p.Tablet {
		scaleControls(a.Controls, tabletControlScale)
	}
	return a
}

// Has reports whether the table has a dedicated row for the game.
func (c *Catalog) Has(gameID string) bool {
	_, ok := c.games[gameID]
	return ok
}

// Games returns the ids of all cataloged games, sorted.
func (c *Catalog) Games() []string {
	ids := make([]string, 0, len(c.games))
	for id := range c.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// tabletControlScale enlarges control boxes on tablet-class devices.
const tabletControlScale = 1.25

func copyControls(specs []ControlSpec) []ControlSpec {
	out := make([]ControlSpec, len(specs))
	copy(out, specs)
	for i := range out {
		keys := make([]core.Key, len(out[i].Keys))
		copy(keys, out[i].Keys)
		out[i].Keys = keys
	}
	return out
}

// scaleControls grows each control box about its center, clamped so it
// stays inside the design surface.
func scaleControls(specs []ControlSpec, factor float64) {
	for i := range specs {
		s := &specs[i]
		cx := s.Pos.X + s.Size.W/2
		cy := s.Pos.Y + s.Size.H/2

		s.Size.W = core.MinF(s.Size.W*factor, DefaultDesignWidth)
		s.Size.H = core.MinF(s.Size.H*factor, DefaultDesignHeight)
		s.Pos.X = core.ClampF(cx-s.Size.W/2, 0, DefaultDesignWidth-s.Size.W)
		s.Pos.Y = core.ClampF(cy-s.Size.H/2, 0, DefaultDesignHeight-s.Size.H)
	}
}

// defaultAdaptation is the generic two-control scheme for games the
// table does not know: a movement joystick on the left and a single
// action button on the right.
func defaultAdaptation() Adaptation {
	return Adaptation{
		Scale: ScaleFit,
		Controls: []ControlSpec{
			{
				ID:   "move",
				Kind: ControlJoystick,
				Pos:  core.Point{X: 40, Y: 420},
				Size: core.Size{W: 140, H: 140},
				Keys: []core.Key{
					core.KeyArrowUp, core.KeyArrowDown,
					core.KeyArrowLeft, core.KeyArrowRight,
				},
				Label: "Move",
			},
			{
				ID:    "action",
				Kind:  ControlButton,
				Pos:   core.Point{X: 620, Y: 440},
				Size:  core.Size{W: 120, H: 120},
				Keys:  []core.Key{core.KeySpace},
				Label: "Action",
			},
		},
	}
}
