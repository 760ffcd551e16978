package ui

import "time"

// ConfigReloadedMsg carries live-reloadable settings picked up from a
// changed config file. Send it with Program.Send from a file watcher.
type ConfigReloadedMsg struct {
	Interval time.Duration
	Muted    bool
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// historyCopiedMsg reports the result of a clipboard copy.
type historyCopiedMsg struct{ err error }

// historyExportedMsg reports the result of a gzip export.
type historyExportedMsg struct {
	path string
	err  error
}

// statusTimeoutMsg clears a transient status message.
type statusTimeoutMsg struct{}
