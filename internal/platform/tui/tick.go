// Package tui provides the Bubble Tea integration for the sandbox.
// It handles the terminal UI loop, input mapping, menus and SSH sessions.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastLoopID atomic.Int64

// nextLoopID returns a unique id for a frame loop.
func nextLoopID() int {
	return int(lastLoopID.Add(1))
}

// FrameMsg is sent to trigger a redraw and, when due, a simulation tick.
// Models ignore frames from other loops.
type FrameMsg struct {
	At     time.Time
	LoopID int
}

// frameCmd returns a Bubble Tea command that sends frame messages at the specified rate.
func frameCmd(loopID, frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 60
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{At: t, LoopID: loopID}
	})
}
