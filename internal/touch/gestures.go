package touch

import (
	"math"
	"time"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/core"
)

// Gesture recognition thresholds, in design units unless noted.
const (
	// DeadZone is the joystick displacement below which no direction
	// registers, per axis.
	DeadZone = 20.0
	// SwipeMinDistance is the dominant-axis displacement a swipe must
	// exceed to register.
	SwipeMinDistance = 50.0
	// SwipeMaxDuration bounds how long a touch may last and still
	// count as a swipe.
	SwipeMaxDuration = 300 * time.Millisecond
	// TapHold is how long a synthesized tap or swipe key stays down
	// before its delayed release.
	TapHold = 100 * time.Millisecond
	// ResizeSettle is the debounce window for resize bursts; mobile
	// browsers fire several resizes during a single rotation.
	ResizeSettle = 100 * time.Millisecond
)

// Directional key mapping order for joystick and swipe zones.
const (
	dirUp = iota
	dirDown
	dirLeft
	dirRight
)

// JoystickKeys derives the directional key set for a joystick
// displacement from its anchor, in design units. The mapping is
// ordered [up, down, left, right]. Each axis reports independently
// once its displacement leaves the dead zone, so diagonals yield two
// keys. Pure: the set depends only on the displacement and mapping.
func JoystickKeys(delta core.Point, keys []core.Key) []core.Key {
	var out []core.Key
	if delta.Y < -DeadZone {
		out = appendMapped(out, keys, dirUp)
	}
	if delta.Y > DeadZone {
		out = appendMapped(out, keys, dirDown)
	}
	if delta.X < -DeadZone {
		out = appendMapped(out, keys, dirLeft)
	}
	if delta.X > DeadZone {
		out = appendMapped(out, keys, dirRight)
	}
	return out
}

// SwipeKey resolves a completed touch to the key a swipe zone should
// pulse. The displacement is in design units; the mapping is ordered
// [up, down, left, right]. A swipe registers only when the touch was
// quick and the dominant axis moved far enough; ties between axes go
// to horizontal. Pure: recognition depends only on the displacement,
// its duration and the mapping.
func SwipeKey(delta core.Point, dt time.Duration, keys []core.Key) (core.Key, bool) {
	if dt >= SwipeMaxDuration {
		return "", false
	}
	ax, ay := core.AbsF(delta.X), core.AbsF(delta.Y)
	if ax >= ay {
		if ax <= SwipeMinDistance {
			return "", false
		}
		if delta.X > 0 {
			return mappedKey(keys, dirRight)
		}
		return mappedKey(keys, dirLeft)
	}
	if ay <= SwipeMinDistance {
		return "", false
	}
	if delta.Y > 0 {
		return mappedKey(keys, dirDown)
	}
	return mappedKey(keys, dirUp)
}

func appendMapped(dst []core.Key, keys []core.Key, i int) []core.Key {
	if k, ok := mappedKey(keys, i); ok {
		dst = append(dst, k)
	}
	return dst
}

func mappedKey(keys []core.Key, i int) (core.Key, bool) {
	if i >= len(keys) || keys[i] == "" {
		return "", false
	}
	return keys[i], true
}

// primaryKey is the key a button or tap zone drives.
func primaryKey(spec catalog.ControlSpec) core.Key {
	if len(spec.Keys) > 0 {
		return spec.Keys[0]
	}
	return ""
}

// clampToRadius pulls a point back onto a circle of radius r around
// the origin when it lies outside.
func clampToRadius(p core.Point, r float64) core.Point {
	d := math.Hypot(p.X, p.Y)
	if d <= r || d == 0 {
		return p
	}
	s := r / d
	return core.Point{X: p.X * s, Y: p.Y * s}
}

func sameKeys(a, b []core.Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
