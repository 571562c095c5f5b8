// Package tui provides the Bubble Tea integration for the tower.
// It renders engine snapshots as a replay and handles playback input.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the replay by one round.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// given number of rounds per second.
func tickCmd(roundsPerSecond int) tea.Cmd {
	if roundsPerSecond <= 0 {
		roundsPerSecond = 1
	}
	interval := time.Second / time.Duration(roundsPerSecond)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
