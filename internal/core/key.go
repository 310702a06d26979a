package core

// Key identifies a keyboard key using browser-style key codes.
// Games on the portal listen for these identifiers, so the adapter
// synthesizes them verbatim when converting touch gestures to input.
type Key string

// Keys commonly bound by portal games.
const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeySpace      Key = "Space"
	KeyEnter      Key = "Enter"
	KeyEscape     Key = "Escape"
	KeyShiftLeft  Key = "ShiftLeft"
	KeyW          Key = "KeyW"
	KeyA          Key = "KeyA"
	KeyS          Key = "KeyS"
	KeyD          Key = "KeyD"
)

// InputInjector delivers synthesized key transitions to a game surface.
// Press and Release are called exactly once per logical transition; the
// engine never auto-repeats a held key. An error from either call means
// the surface cannot accept input in its current state.
type InputInjector interface {
	Press(k Key) error
	Release(k Key) error
}
