package core

import "time"

// TouchID identifies one finger across a begin/move/end sequence.
// Hosts assign IDs; the engine only requires them to be stable for the
// lifetime of the touch.
type TouchID int64

// TouchPhase describes where in its lifecycle a touch event sits.
type TouchPhase int

const (
	TouchBegin TouchPhase = iota
	TouchMove
	TouchEnd
	TouchCancel
)

// String returns a human-readable name for the phase.
func (p TouchPhase) String() string {
	switch p {
	case TouchBegin:
		return "begin"
	case TouchMove:
		return "move"
	case TouchEnd:
		return "end"
	case TouchCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// TouchEvent is a single touch sample delivered by the host.
// Pos is in screen coordinates of the surface. Time comes from the host
// so gesture recognition stays a pure function of the event stream.
type TouchEvent struct {
	ID    TouchID
	Pos   Point
	Phase TouchPhase
	Time  time.Time
}
