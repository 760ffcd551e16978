// Package alert provides the accessibility alert queue for simkit.
// Widgets enqueue short spoken-feedback requests (utterances); the queue
// drains them at a fixed interval, de-duplicates by group, gates on a
// per-item delay, and forwards finalized text to an announcement sink.
package alert

import (
	"time"

	"github.com/google/uuid"
)

// Predicate is evaluated at the moment an utterance is dequeued. When it
// returns false the utterance is dropped without being announced.
type Predicate func() bool

// Utterance is one spoken-alert request: content, timing and grouping
// metadata. An utterance is owned by at most one queue from insertion
// until it is dequeued or evicted by a group collision.
type Utterance struct {
	id    string
	parts []string
	list  bool
	loop  bool

	predicate Predicate
	group     string
	delay     time.Duration

	// Advanced by the owning queue, once per tick.
	timeInQueue   time.Duration
	announceCount int
}

// Option configures an Utterance at construction time.
type Option func(*Utterance)

// WithLoop makes repeated announcements of a list-valued utterance wrap
// back to the first element after the last. Only valid for utterances
// created with NewList.
func WithLoop() Option {
	return func(u *Utterance) { u.loop = true }
}

// WithPredicate sets a condition checked at dequeue time. A nil
// predicate always passes.
func WithPredicate(fn Predicate) Option {
	return func(u *Utterance) { u.predicate = fn }
}

// WithGroup sets the de-duplication key. Inserting an utterance evicts
// every queued utterance sharing its group. The empty string means no
// group.
func WithGroup(key string) Option {
	return func(u *Utterance) { u.group = key }
}

// WithDelay sets the minimum time the utterance must reside in the
// queue before it may be announced.
func WithDelay(d time.Duration) Option {
	return func(u *Utterance) { u.delay = d }
}

// New creates an utterance with a single text content.
func New(text string, opts ...Option) (*Utterance, error) {
	return build([]string{text}, false, opts)
}

// NewList creates an utterance whose repeated announcements step through
// parts in order. Without WithLoop the final element repeats once the
// list is exhausted.
func NewList(parts []string, opts ...Option) (*Utterance, error) {
	return build(parts, true, opts)
}

func build(parts []string, list bool, opts []Option) (*Utterance, error) {
	u := &Utterance{
		id:    uuid.NewString(),
		parts: parts,
		list:  list,
	}
	for _, opt := range opts {
		opt(u)
	}

	if len(u.parts) == 0 {
		return nil, ErrEmptyContent
	}
	for _, p := range u.parts {
		if p == "" {
			return nil, ErrEmptyContent
		}
	}
	if u.loop && !u.list {
		return nil, ErrLoopRequiresList
	}
	if u.delay < 0 {
		return nil, ErrNegativeDelay
	}

	return u, nil
}

// ID returns the utterance's unique identifier.
func (u *Utterance) ID() string { return u.id }

// Group returns the de-duplication key, or the empty string.
func (u *Utterance) Group() string { return u.group }

// Delay returns the minimum queue residency before announcement.
func (u *Utterance) Delay() time.Duration { return u.delay }

// TimeInQueue returns the elapsed time accumulated since insertion.
func (u *Utterance) TimeInQueue() time.Duration { return u.timeInQueue }

// AnnounceCount returns how many times NextText has been called.
func (u *Utterance) AnnounceCount() int { return u.announceCount }

// NextText returns the content to announce next and advances the
// announce counter. Single-content utterances always return their text.
// List utterances step through their elements; with WithLoop the index
// wraps, without it the final element repeats indefinitely.
func (u *Utterance) NextText() string {
	idx := 0
	switch {
	case !u.list:
		// single content, index stays 0
	case u.loop:
		idx = u.announceCount % len(u.parts)
	default:
		idx = u.announceCount
		if idx >= len(u.parts) {
			idx = len(u.parts) - 1
		}
	}
	u.announceCount++
	return u.parts[idx]
}

// passes evaluates the predicate. Called by the queue exactly once, at
// dequeue time.
func (u *Utterance) passes() bool {
	return u.predicate == nil || u.predicate()
}
