// Package speech provides an announcement sink that forwards text to an
// external speech synthesis command (espeak-ng, say, piper and friends).
package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a single synthesis invocation.
const DefaultTimeout = 10 * time.Second

// Sink speaks announcements by invoking a synthesis subprocess once per
// announcement, passing the text on stdin. Invocations are serialized:
// overlapping speech is worse than slightly late speech.
type Sink struct {
	mu sync.Mutex

	command string
	args    []string
	timeout time.Duration
}

// Option configures a Sink.
type Option func(*Sink)

// WithArgs sets extra arguments passed to the synthesis command.
func WithArgs(args ...string) Option {
	return func(s *Sink) { s.args = args }
}

// WithTimeout bounds a single invocation. Values <= 0 are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Sink) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a speech sink for the given command. The command must
// accept text on stdin, like espeak-ng and piper do.
func New(command string, opts ...Option) (*Sink, error) {
	if command == "" {
		return nil, fmt.Errorf("speech command cannot be empty")
	}
	s := &Sink{
		command: command,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Available reports whether the synthesis command can be found on PATH.
func (s *Sink) Available() bool {
	_, err := exec.LookPath(s.command)
	return err == nil
}

// Announce synthesizes the text. The subprocess is given the text on
// stdin before it starts, and is killed when the timeout elapses.
func (s *Sink) Announce(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.command, s.args...)
	// Stdin must be wired before Start to avoid racing the process.
	cmd.Stdin = strings.NewReader(text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("speech command timed out after %v", s.timeout)
		}
		return fmt.Errorf("speech command failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	log.Debug("Speech sink: spoke", "command", s.command, "chars", len(text), "took", time.Since(start))
	return nil
}
