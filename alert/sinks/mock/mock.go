// Package mock provides a recording announcement sink for testing.
package mock

import "sync"

// Sink implements alert.Announcer and records every announcement.
type Sink struct {
	mu    sync.Mutex
	texts []string

	// Control for testing
	announceErr error
	callCount   int
}

// New creates a new recording sink.
func New() *Sink {
	return &Sink{}
}

// Announce records the text, or returns the configured error.
func (s *Sink) Announce(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.callCount++
	if s.announceErr != nil {
		return s.announceErr
	}
	s.texts = append(s.texts, text)
	return nil
}

// Texts returns a copy of everything announced so far.
func (s *Sink) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}

// Last returns the most recent announcement, or the empty string.
func (s *Sink) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.texts) == 0 {
		return ""
	}
	return s.texts[len(s.texts)-1]
}

// CallCount returns how many times Announce has been invoked,
// including failed calls.
func (s *Sink) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// FailWith makes subsequent Announce calls return err. Pass nil to
// restore normal recording.
func (s *Sink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announceErr = err
}

// Reset clears recorded announcements and counters.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = nil
	s.callCount = 0
	s.announceErr = nil
}
