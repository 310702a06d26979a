package core

import (
	"testing"
	"time"
)

func TestManualSchedulerFiresOnAdvance(t *testing.T) {
	m := NewManualScheduler()
	fired := false

	m.ScheduleOnce(100*time.Millisecond, func() { fired = true })

	m.Advance(50 * time.Millisecond)
	if fired {
		t.Error("callback fired before its due time")
	}

	m.Advance(50 * time.Millisecond)
	if !fired {
		t.Error("callback did not fire at its due time")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d after fire, expected 0", m.Pending())
	}
}

func TestManualSchedulerCancel(t *testing.T) {
	m := NewManualScheduler()
	fired := false

	cancel := m.ScheduleOnce(100*time.Millisecond, func() { fired = true })
	cancel()

	m.Advance(200 * time.Millisecond)
	if fired {
		t.Error("canceled callback fired")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d after cancel, expected 0", m.Pending())
	}

	// Canceling again must be harmless.
	cancel()
}

func TestManualSchedulerFiresInDueOrder(t *testing.T) {
	m := NewManualScheduler()
	var order []int

	m.ScheduleOnce(300*time.Millisecond, func() { order = append(order, 3) })
	m.ScheduleOnce(100*time.Millisecond, func() { order = append(order, 1) })
	m.ScheduleOnce(200*time.Millisecond, func() { order = append(order, 2) })

	m.Advance(time.Second)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("fire order = %v, expected [1 2 3]", order)
	}
}

func TestManualSchedulerCallbackMaySchedule(t *testing.T) {
	m := NewManualScheduler()
	var order []string

	m.ScheduleOnce(10*time.Millisecond, func() {
		order = append(order, "first")
		m.ScheduleOnce(10*time.Millisecond, func() {
			order = append(order, "second")
		})
	})

	// First advance fires the outer callback and the inner one, since
	// the inner due time (20ms) is within the advanced window.
	m.Advance(30 * time.Millisecond)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("fire order = %v, expected [first second]", order)
	}
}

func TestManualSchedulerNow(t *testing.T) {
	m := NewManualScheduler()

	m.Advance(70 * time.Millisecond)
	m.Advance(30 * time.Millisecond)

	if m.Now() != 100*time.Millisecond {
		t.Errorf("Now() = %v, expected 100ms", m.Now())
	}
}

func TestTimerSchedulerCancelStopsCallback(t *testing.T) {
	var s TimerScheduler
	ch := make(chan struct{}, 1)

	cancel := s.ScheduleOnce(10*time.Millisecond, func() { ch <- struct{}{} })
	cancel()

	select {
	case <-ch:
		t.Error("canceled timer callback fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTimerSchedulerFires(t *testing.T) {
	var s TimerScheduler
	ch := make(chan struct{}, 1)

	s.ScheduleOnce(5*time.Millisecond, func() { ch <- struct{}{} })

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("timer callback never fired")
	}
}
