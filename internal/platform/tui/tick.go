// Package tui provides the Bubble Tea host for rooftops.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent on every render frame.
type TickMsg time.Time

// tickCmd returns a command that fires one TickMsg after a frame interval.
// The simulation rate is independent; the game turns measured wall time
// into fixed steps.
func tickCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 60
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock measures wall time between frames.
type frameClock struct {
	last time.Time
}

// elapsed returns the time since the previous frame. The first frame and
// any clock that went backwards report zero.
func (c *frameClock) elapsed(now time.Time) time.Duration {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		return 0
	}
	return d
}
