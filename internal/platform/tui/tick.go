// Package tui runs scenes on a Canvas: the fixed-rate frame loop, local
// terminal setup, the SSH server and the Bubble Tea menu and stats screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the menu preview by one frame.
type TickMsg time.Time

// frameInterval converts a tick rate to the time between frames.
// Non-positive rates fall back to 30 frames per second.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 30
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
