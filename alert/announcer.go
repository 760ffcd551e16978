package alert

import (
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Announcer renders finalized announcement text to the user. The TUI
// live region, the speech subprocess and the audio chime all implement
// it; see the sinks subpackages.
type Announcer interface {
	Announce(text string) error
}

// AnnouncerFunc adapts a function to the Announcer interface.
type AnnouncerFunc func(text string) error

// Announce implements Announcer.
func (fn AnnouncerFunc) Announce(text string) error { return fn(text) }

// Multi fans one announcement out to several sinks. Every sink is
// attempted; the first error is returned.
func Multi(sinks ...Announcer) Announcer {
	return AnnouncerFunc(func(text string) error {
		var first error
		for _, sink := range sinks {
			if err := sink.Announce(text); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}

// RateLimited wraps a sink with a token-bucket limit. Announcements
// above the bound are dropped, not delayed: queueing speech behind
// stale speech defeats the point of the alert queue.
func RateLimited(sink Announcer, perSecond float64, burst int) Announcer {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return AnnouncerFunc(func(text string) error {
		if !limiter.Allow() {
			log.Debug("Announcer: rate limit exceeded, dropping", "text", text)
			return nil
		}
		return sink.Announce(text)
	})
}
