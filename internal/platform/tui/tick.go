// Package tui provides the Bubble Tea host for the glider.
// It handles the terminal UI loop, input mapping, and screen flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/baseglide/internal/glide"
)

// FrameMsg asks the driver to simulate one frame of the chain identified by
// Token. Frames from an abandoned chain are dropped by the driver.
type FrameMsg struct {
	Token glide.Token
	Time  time.Time
}

// frameCmd schedules the next frame of a chain at the given rate.
func frameCmd(tok glide.Token, fps int) tea.Cmd {
	interval := time.Second / time.Duration(max(fps, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Token: tok, Time: t}
	})
}
