package touch

import (
	"fmt"
	"time"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/core"
)

// overlay is the live state of one control. The adapter repositions
// rect on resize but never recreates overlays mid-attachment, so
// pressed flags, knob offsets and pending releases ride through an
// orientation change.
type overlay struct {
	spec catalog.ControlSpec
	rect core.Rect // screen coordinates

	captured bool
	pressed  bool

	// joystick
	anchor core.Point
	knob   core.Point // design units, clamped to the stick radius
	dirs   []core.Key // directional keys currently held

	// swipe origin
	start     core.Point
	startTime time.Time

	// pending delayed release for tap and swipe pulses
	pendingKey    core.Key
	cancelRelease core.CancelFunc
}

// stickRadius is the knob travel limit for display purposes.
func (o *overlay) stickRadius() float64 {
	return core.MinF(o.spec.Size.W, o.spec.Size.H) / 2
}

// HandleTouch routes one touch event. Events arriving while detached
// are dropped. The overlay hit at Begin captures the touch ID until
// its End or Cancel; a touch on an already-busy overlay is swallowed.
func (a *Adapter) HandleTouch(ev core.TouchEvent) {
	a.mu.Lock()
	err := a.routeLocked(ev)
	a.mu.Unlock()
	a.reportError(err)
}

func (a *Adapter) routeLocked(ev core.TouchEvent) error {
	if !a.attached {
		return nil
	}
	switch ev.Phase {
	case core.TouchBegin:
		return a.beginLocked(ev)
	case core.TouchMove:
		if o, ok := a.captures[ev.ID]; ok {
			return a.moveLocked(o, ev)
		}
		if _, ok := a.tracked[ev.ID]; ok {
			a.tracked[ev.ID] = ev.Pos
		}
	case core.TouchEnd, core.TouchCancel:
		delete(a.tracked, ev.ID)
		if o, ok := a.captures[ev.ID]; ok {
			delete(a.captures, ev.ID)
			return a.endLocked(o, ev)
		}
	}
	return nil
}

func (a *Adapter) beginLocked(ev core.TouchEvent) error {
	for _, o := range a.overlays {
		if !o.rect.Contains(ev.Pos) {
			continue
		}
		if o.captured {
			return nil
		}
		o.captured = true
		a.captures[ev.ID] = o
		return a.beginControlLocked(o, ev)
	}
	if a.gestures {
		a.tracked[ev.ID] = ev.Pos
	}
	return nil
}

func (a *Adapter) beginControlLocked(o *overlay, ev core.TouchEvent) error {
	switch o.spec.Kind {
	case catalog.ControlButton:
		o.pressed = true
		return a.pressLocked(primaryKey(o.spec))
	case catalog.ControlJoystick:
		o.anchor = ev.Pos
		o.knob = core.Point{}
		o.dirs = o.dirs[:0]
	case catalog.ControlSwipe:
		o.start = ev.Pos
		o.startTime = ev.Time
	case catalog.ControlTap:
		return a.pulseLocked(o, primaryKey(o.spec))
	}
	return nil
}

func (a *Adapter) moveLocked(o *overlay, ev core.TouchEvent) error {
	if o.spec.Kind != catalog.ControlJoystick {
		return nil
	}
	delta := core.Point{
		X: (ev.Pos.X - o.anchor.X) / a.vp.ScaleX,
		Y: (ev.Pos.Y - o.anchor.Y) / a.vp.ScaleY,
	}
	o.knob = clampToRadius(delta, o.stickRadius())
	return a.syncJoystickLocked(o, JoystickKeys(delta, o.spec.Keys))
}

func (a *Adapter) endLocked(o *overlay, ev core.TouchEvent) error {
	o.captured = false
	switch o.spec.Kind {
	case catalog.ControlButton:
		o.pressed = false
		return a.releaseLocked(primaryKey(o.spec))
	case catalog.ControlJoystick:
		o.knob = core.Point{}
		return a.syncJoystickLocked(o, nil)
	case catalog.ControlSwipe:
		if ev.Phase == core.TouchCancel {
			return nil
		}
		delta := core.Point{
			X: (ev.Pos.X - o.start.X) / a.vp.ScaleX,
			Y: (ev.Pos.Y - o.start.Y) / a.vp.ScaleY,
		}
		k, ok := SwipeKey(delta, ev.Time.Sub(o.startTime), o.spec.Keys)
		if !ok {
			return nil
		}
		return a.pulseLocked(o, k)
	}
	return nil
}

// syncJoystickLocked is level-triggered: when the desired set differs
// from the held set, every held directional key is released before
// the new ones are pressed, so a direction change can never leak a
// stale key. An unchanged set is a no-op.
func (a *Adapter) syncJoystickLocked(o *overlay, desired []core.Key) error {
	if sameKeys(o.dirs, desired) {
		return nil
	}
	for _, k := range o.dirs {
		if err := a.releaseLocked(k); err != nil {
			return err
		}
	}
	o.dirs = o.dirs[:0]
	for _, k := range desired {
		if err := a.pressLocked(k); err != nil {
			return err
		}
		o.dirs = append(o.dirs, k)
	}
	return nil
}

// pulseLocked presses a key now and schedules its release one TapHold
// later. A pulse arriving while the previous release is still pending
// supersedes it: the timer is cancelled and the old key released
// before the new press, so a zone never has two releases in flight.
func (a *Adapter) pulseLocked(o *overlay, k core.Key) error {
	if err := a.flushPendingLocked(o); err != nil {
		return err
	}
	if k == "" {
		return nil
	}
	if err := a.pressLocked(k); err != nil {
		return err
	}
	o.pressed = true
	o.pendingKey = k
	o.cancelRelease = a.sched.ScheduleOnce(TapHold, a.releaseCallback(o))
	return nil
}

func (a *Adapter) flushPendingLocked(o *overlay) error {
	if o.cancelRelease == nil {
		return nil
	}
	o.cancelRelease()
	o.cancelRelease = nil
	k := o.pendingKey
	o.pendingKey = ""
	o.pressed = false
	return a.releaseLocked(k)
}

func (a *Adapter) releaseCallback(o *overlay) func() {
	return func() {
		a.mu.Lock()
		if !a.attached || o.cancelRelease == nil {
			a.mu.Unlock()
			return
		}
		o.cancelRelease = nil
		k := o.pendingKey
		o.pendingKey = ""
		o.pressed = false
		err := a.releaseLocked(k)
		a.mu.Unlock()
		a.reportError(err)
	}
}

// pressLocked injects a single key-down. Already-held keys are not
// re-pressed, so the surface never sees auto-repeat. An injector
// failure rolls the adapter back to idle before the error surfaces.
func (a *Adapter) pressLocked(k core.Key) error {
	if k == "" || a.held.Has(k) {
		return nil
	}
	if err := a.surface.Injector().Press(k); err != nil {
		a.cleanupLocked()
		return fmt.Errorf("touch: cannot press %s: %w", k, err)
	}
	a.held.Set(k)
	return nil
}

func (a *Adapter) releaseLocked(k core.Key) error {
	if k == "" || !a.held.Has(k) {
		return nil
	}
	if err := a.surface.Injector().Release(k); err != nil {
		a.cleanupLocked()
		return fmt.Errorf("touch: cannot release %s: %w", k, err)
	}
	a.held.Unset(k)
	return nil
}
