package core

import (
	"sync"
	"time"
)

// CancelFunc cancels a scheduled callback. Calling it after the callback
// has fired is a no-op.
type CancelFunc func()

// Scheduler defers a single callback by a delay.
// The adapter uses it for debounced resizes and delayed key releases;
// injecting a scheduler keeps that timing logic deterministic in tests.
type Scheduler interface {
	ScheduleOnce(d time.Duration, fn func()) CancelFunc
}

// TimerScheduler schedules callbacks on real timers.
// Callbacks run on the timer goroutine, so anything they touch must be
// safe for concurrent use.
type TimerScheduler struct{}

// ScheduleOnce runs fn after d using time.AfterFunc.
func (TimerScheduler) ScheduleOnce(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() {
		t.Stop()
	}
}

// ManualScheduler is a deterministic scheduler driven by an explicit
// clock. Nothing fires until Advance moves virtual time past a task's
// due point. Intended for tests and single-threaded hosts.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	due      time.Duration
	seq      int
	fn       func()
	canceled bool
}

// NewManualScheduler creates a scheduler with virtual time at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// ScheduleOnce records fn to run once virtual time reaches now+d.
func (m *ManualScheduler) ScheduleOnce(d time.Duration, fn func()) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	t := &manualTask{due: m.now + d, seq: m.seq, fn: fn}
	m.seq++
	m.tasks = append(m.tasks, t)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		t.canceled = true
	}
}

// Advance moves virtual time forward by d and fires every due task in
// due-time order. Callbacks run without the scheduler lock held, so they
// may schedule or cancel further tasks.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()

	for {
		t := m.takeDue()
		if t == nil {
			return
		}
		t.fn()
	}
}

// takeDue removes and returns the earliest due task, dropping canceled
// tasks along the way. Returns nil when nothing is due.
func (m *ManualScheduler) takeDue() *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.canceled {
			live = append(live, t)
		}
	}
	m.tasks = live

	best := -1
	for i, t := range m.tasks {
		if t.due > m.now {
			continue
		}
		if best == -1 || t.due < m.tasks[best].due ||
			(t.due == m.tasks[best].due && t.seq < m.tasks[best].seq) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}

	t := m.tasks[best]
	m.tasks = append(m.tasks[:best], m.tasks[best+1:]...)
	return t
}

// Pending returns the number of scheduled tasks that have not fired or
// been canceled.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Now returns the current virtual time.
func (m *ManualScheduler) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
