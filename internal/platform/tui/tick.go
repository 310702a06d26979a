// Package tui is the terminal reference host for the adaptation
// engine. It drives the full pipeline against a probe surface: the
// demo model plays mouse input as synthetic touches, and the report
// browser walks compatibility results across device presets.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a view refresh.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
