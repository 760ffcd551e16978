package ui

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/simfoundry/simkit/alert"
	"github.com/simfoundry/simkit/alert/sinks/chime"
	"github.com/simfoundry/simkit/alert/sinks/speech"
)

// captureSink collects announcements delivered during a queue tick so
// the Update loop can move them into the live region and history. Ticks
// run synchronously inside Update, so drain is called right after Tick.
type captureSink struct {
	mu      sync.Mutex
	pending []string
}

func (s *captureSink) Announce(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, text)
	return nil
}

func (s *captureSink) drain() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

// buildSink assembles the queue's announcement sink: the capture sink
// always, plus speech and chime when configured and available. Missing
// external sinks degrade to the visual surface rather than failing.
func buildSink(cfg alert.Config, capture *captureSink) alert.Announcer {
	sinks := []alert.Announcer{capture}

	if cfg.Speech.Enabled {
		sp, err := speech.New(cfg.Speech.Command,
			speech.WithArgs(cfg.Speech.Args...),
			speech.WithTimeout(cfg.Speech.Timeout),
		)
		switch {
		case err != nil:
			log.Warn("speech sink unavailable", "command", cfg.Speech.Command, "error", err)
		case !sp.Available():
			log.Warn("speech command not found", "command", cfg.Speech.Command)
		default:
			var sink alert.Announcer = sp
			if cfg.RateLimit > 0 {
				sink = alert.RateLimited(sink, cfg.RateLimit, 1)
			}
			sinks = append(sinks, sink)
			log.Debug("speech sink attached", "command", cfg.Speech.Command)
		}
	}

	if cfg.Chime {
		ch, err := chime.New()
		if err != nil {
			log.Warn("chime sink unavailable", "error", err)
		} else {
			sinks = append(sinks, ch)
			log.Debug("chime sink attached")
		}
	}

	if len(sinks) == 1 {
		return capture
	}
	return alert.Multi(sinks...)
}
