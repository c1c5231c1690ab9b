// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns tick timestamps into clamped frame deltas.
// The first frame, which has no predecessor, gets the nominal tick length.
type frameClock struct {
	nominal time.Duration
	last    time.Time
}

func newFrameClock(nominal time.Duration) *frameClock {
	return &frameClock{nominal: nominal}
}

// Advance returns the delta since the previous tick.
func (c *frameClock) Advance(now time.Time) time.Duration {
	dt := c.nominal
	if !c.last.IsZero() {
		dt = now.Sub(c.last)
	}
	c.last = now
	return core.ClampDelta(dt)
}

// Restart forgets the previous tick, e.g. after the program was suspended.
func (c *frameClock) Restart() {
	c.last = time.Time{}
}
