// Package touch turns raw touch events on a host surface into
// synthesized keyboard input for games that only understand keys.
//
// An Adapter owns the control overlays of one game (buttons, a
// virtual joystick, swipe and tap zones), placed through a Viewport
// that maps the game's design coordinates onto the real screen. The
// host feeds it touch events and resize notifications; the adapter
// drives the surface's InputInjector with single press and release
// transitions and never auto-repeats. Gesture recognition is pure and
// all timing goes through core.Scheduler, so the package is testable
// with a manual clock.
package touch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/core"
)

var (
	// ErrNoSurface reports an attach against a nil or zero-sized
	// surface.
	ErrNoSurface = errors.New("touch: no usable surface")
	// ErrNotAttached reports an operation that needs a live
	// attachment.
	ErrNotAttached = errors.New("touch: adapter not attached")
)

// Surface is the host-side end of an adaptation: the screen box the
// game occupies plus the sink for synthesized keys. Implementations
// must be safe for concurrent use; the adapter calls them from timer
// callbacks as well as from the event path.
type Surface interface {
	// Size reports the game area in screen pixels.
	Size() (w, h int)
	// Injector returns the receiver of synthesized key transitions.
	Injector() core.InputInjector
}

// Option configures an Adapter at construction.
type Option func(*Adapter)

// WithErrorFunc installs a callback invoked after the adapter has
// rolled itself back because the surface rejected an injected key.
func WithErrorFunc(fn func(error)) Option {
	return func(a *Adapter) { a.onError = fn }
}

// WithLogger replaces the package-default logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// Adapter drives one surface. Idle until Attach succeeds, back to
// Idle after Cleanup. All exported methods are safe for concurrent
// use.
type Adapter struct {
	mu      sync.Mutex
	sched   core.Scheduler
	logger  *log.Logger
	onError func(error)

	surface  Surface
	cfg      catalog.GameConfig
	vp       Viewport
	attached bool
	gestures bool

	overlays []*overlay
	captures map[core.TouchID]*overlay
	tracked  map[core.TouchID]core.Point
	held     core.KeySet

	cancelResize core.CancelFunc
	pendingW     int
	pendingH     int
}

// New builds an idle adapter. A nil scheduler falls back to real
// timers.
func New(sched core.Scheduler, opts ...Option) *Adapter {
	if sched == nil {
		sched = core.TimerScheduler{}
	}
	a := &Adapter{
		sched:  sched,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Attach binds the adapter to a surface using a game's control
// configuration and starts routing touches. Attaching while already
// attached detaches cleanly first; a rejected surface leaves the
// previous attachment in place.
func (a *Adapter) Attach(surface Surface, cfg catalog.GameConfig) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if surface == nil {
		return ErrNoSurface
	}
	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("touch: cannot attach to %dx%d surface: %w", w, h, ErrNoSurface)
	}

	if a.attached {
		a.cleanupLocked()
	}

	a.surface = surface
	a.cfg = cfg
	a.vp = ComputeViewport(cfg, w, h)
	a.overlays = make([]*overlay, 0, len(cfg.Controls))
	for _, spec := range cfg.Controls {
		a.overlays = append(a.overlays, &overlay{
			spec: spec,
			rect: a.vp.ControlRect(spec),
		})
	}
	a.captures = make(map[core.TouchID]*overlay)
	a.tracked = make(map[core.TouchID]core.Point)
	a.held = core.NewKeySet()
	a.attached = true
	return nil
}

// EnableGestures turns on surface-level touch tracking: touches that
// hit no overlay are still followed by ID so hosts can show
// multi-touch state.
func (a *Adapter) EnableGestures() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.attached {
		return ErrNotAttached
	}
	a.gestures = true
	return nil
}

// HandleResize notes a new screen box and schedules the reflow after
// a short settle window. Mobile browsers fire several resizes during
// one rotation; a burst collapses into a single reflow.
func (a *Adapter) HandleResize(w, h int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.attached {
		return
	}
	a.pendingW, a.pendingH = w, h
	if a.cancelResize != nil {
		a.cancelResize()
	}
	a.cancelResize = a.sched.ScheduleOnce(ResizeSettle, a.settleResize)
}

func (a *Adapter) settleResize() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelResize = nil
	if !a.attached || a.pendingW <= 0 || a.pendingH <= 0 {
		return
	}
	a.vp = ComputeViewport(a.cfg, a.pendingW, a.pendingH)
	// Reposition in place: pressed flags, knob offsets and captured
	// touches survive an orientation change.
	for _, o := range a.overlays {
		o.rect = a.vp.ControlRect(o.spec)
	}
}

// Cleanup detaches from the surface: pending scheduled callbacks are
// cancelled, keys still held are released best-effort, overlay and
// gesture state is cleared. Safe to call repeatedly.
func (a *Adapter) Cleanup() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cleanupLocked()
}

func (a *Adapter) cleanupLocked() {
	if !a.attached {
		return
	}
	if a.cancelResize != nil {
		a.cancelResize()
		a.cancelResize = nil
	}
	for _, o := range a.overlays {
		if o.cancelRelease != nil {
			o.cancelRelease()
			o.cancelRelease = nil
			o.pendingKey = ""
		}
	}
	// Release whatever is still down so the game is not left with
	// phantom keys held. The surface may already be gone.
	if a.surface != nil {
		if inj := a.surface.Injector(); inj != nil {
			for _, k := range a.held.Sorted() {
				//nolint:errcheck // best-effort during teardown
				inj.Release(k)
			}
		}
	}
	a.held.Clear()
	a.overlays = nil
	a.captures = nil
	a.tracked = nil
	a.surface = nil
	a.cfg = catalog.GameConfig{}
	a.vp = Viewport{}
	a.attached = false
	a.gestures = false
}

// Attached reports whether the adapter currently drives a surface.
func (a *Adapter) Attached() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.attached
}

// GesturesEnabled reports whether surface-level tracking is on.
func (a *Adapter) GesturesEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gestures
}

// Viewport returns the current screen mapping. ok is false while
// detached.
func (a *Adapter) Viewport() (Viewport, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.vp, a.attached
}

// HeldKeys lists the keys the adapter currently holds down, sorted.
func (a *Adapter) HeldKeys() []core.Key {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.held.Sorted()
}

// ActiveTouches counts the touches the adapter is following, captured
// and surface-level both.
func (a *Adapter) ActiveTouches() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.captures) + len(a.tracked)
}

// OverlayView is a host-facing snapshot of one control overlay.
type OverlayView struct {
	ID      string
	Kind    catalog.ControlKind
	Label   string
	Rect    core.Rect  // screen coordinates
	Pressed bool       // button/tap down, joystick captured
	Knob    core.Point // joystick knob offset from center, screen units
}

// Overlays snapshots the control overlays for rendering. The returned
// slice is a copy; mutating it does not touch adapter state.
func (a *Adapter) Overlays() []OverlayView {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]OverlayView, 0, len(a.overlays))
	for _, o := range a.overlays {
		v := OverlayView{
			ID:      o.spec.ID,
			Kind:    o.spec.Kind,
			Label:   o.spec.Label,
			Rect:    o.rect,
			Pressed: o.pressed,
		}
		if o.spec.Kind == catalog.ControlJoystick {
			v.Pressed = o.captured
			v.Knob = core.Point{X: o.knob.X * a.vp.ScaleX, Y: o.knob.Y * a.vp.ScaleY}
		}
		out = append(out, v)
	}
	return out
}

func (a *Adapter) reportError(err error) {
	if err == nil {
		return
	}
	if a.logger != nil {
		a.logger.Error("input synthesis failed", "error", err)
	}
	if a.onError != nil {
		a.onError(err)
	}
}
