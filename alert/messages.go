package alert

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages for Bubble Tea communication between the alert queue and a
// host UI. A TUI that owns the event loop drives the queue itself: it
// schedules TickCmd, calls Queue.Tick on each TickMsg, and re-schedules.

// TickMsg signals that one queue tick is due.
type TickMsg struct {
	At time.Time // When the tick fired
}

// AnnouncedMsg carries the text of a completed announcement, for live
// region display and history.
type AnnouncedMsg struct {
	Text string    // Finalized announcement text
	At   time.Time // When the announcement was made
}

// DroppedMsg signals that an utterance was discarded at dequeue time
// because its predicate returned false.
type DroppedMsg struct {
	ID string // ID of the dropped utterance
}

// TickCmd returns a command that delivers a TickMsg after the given
// interval. Use the queue's own Interval so residency accounting and
// scheduling agree.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}
