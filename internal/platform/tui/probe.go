package tui

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/touch-arcade/internal/core"
)

// probeHistory is how many key transitions the probe keeps for display.
const probeHistory = 8

// Probe is the instrumented host surface behind the demo: it receives
// the synthesized key stream and presentation hints and keeps a short
// history for the view. Mutex-guarded because tap and swipe releases
// arrive on scheduler timer goroutines, not the Bubble Tea loop.
type Probe struct {
	mu     sync.Mutex
	w, h   int
	held   core.KeySet
	recent []string
	hints  map[string]float64
}

// NewProbe creates a probe surface with the given pixel box.
func NewProbe(w, h int) *Probe {
	return &Probe{
		w:     w,
		h:     h,
		held:  core.NewKeySet(),
		hints: make(map[string]float64),
	}
}

// Size returns the current surface box.
func (p *Probe) Size() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.w, p.h
}

// Resize updates the surface box. The adapter picks the new box up on
// its next HandleResize reflow.
func (p *Probe) Resize(w, h int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.w, p.h = w, h
}

// Injector returns the probe itself; it records instead of forwarding.
func (p *Probe) Injector() core.InputInjector {
	return p
}

// Press records a key-down transition.
func (p *Probe) Press(k core.Key) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held.Set(k)
	p.record("↓ " + string(k))
	return nil
}

// Release records a key-up transition.
func (p *Probe) Release(k core.Key) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.held.Unset(k)
	p.record("↑ " + string(k))
	return nil
}

// SetHint stores a presentation hint for display.
func (p *Probe) SetHint(key string, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hints[key] = value
}

// HeldKeys returns the currently held keys in sorted order.
func (p *Probe) HeldKeys() []core.Key {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.held.Sorted()
}

// Recent returns the latest key transitions, newest last.
func (p *Probe) Recent() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.recent))
	copy(out, p.recent)
	return out
}

// Hints returns a copy of the received presentation hints.
func (p *Probe) Hints() map[string]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]float64, len(p.hints))
	for k, v := range p.hints {
		out[k] = v
	}
	return out
}

// HintLine formats the received hints for the status strip.
func (p *Probe) HintLine() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.hints) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.hints))
	for _, k := range sortedHintKeys(p.hints) {
		parts = append(parts, fmt.Sprintf("%s=%.2g", k, p.hints[k]))
	}
	line := parts[0]
	for _, part := range parts[1:] {
		line += "  " + part
	}
	return line
}

func (p *Probe) record(entry string) {
	p.recent = append(p.recent, entry)
	if len(p.recent) > probeHistory {
		p.recent = p.recent[len(p.recent)-probeHistory:]
	}
}

func sortedHintKeys(hints map[string]float64) []string {
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
