package alert

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultInterval is the period between queue ticks unless configured
// otherwise.
const DefaultInterval = 500 * time.Millisecond

// Queue holds pending utterances and releases them to an announcement
// sink at a bounded rate, in first-in-first-out order among items whose
// delay is satisfied. Insertion with a group key evicts queued items
// sharing that key, so at most one utterance per group is ever pending.
//
// A Queue is created inert. Either call Start to drain it from an
// internal ticker, or drive it from a host event loop by calling Tick
// at a fixed period (the bubbletea integration in messages.go does the
// latter). Ticks must not run concurrently with each other; the Queue
// locks internally so its methods may be called from any goroutine.
type Queue struct {
	mu sync.Mutex

	items    []*Utterance
	interval time.Duration
	muted    bool
	enabled  bool

	sink Announcer

	ticker *time.Ticker
	done   chan struct{}

	onAnnounce func(text string)
	onDrop     func(u *Utterance)
}

// QueueOption configures a Queue at construction time.
type QueueOption func(*Queue)

// WithInterval sets the tick period. Values <= 0 are ignored.
func WithInterval(d time.Duration) QueueOption {
	return func(q *Queue) {
		if d > 0 {
			q.interval = d
		}
	}
}

// WithMuted creates the queue muted. Muted queues still consume items
// on tick but never forward text to the sink.
func WithMuted() QueueOption {
	return func(q *Queue) { q.muted = true }
}

// WithDisabled creates the queue disabled. Disabled queues ignore
// enqueue calls and never dequeue.
func WithDisabled() QueueOption {
	return func(q *Queue) { q.enabled = false }
}

// WithSink sets the announcement sink. A sink may also be supplied
// later via Start or SetSink.
func WithSink(sink Announcer) QueueOption {
	return func(q *Queue) { q.sink = sink }
}

// OnAnnounce registers a callback invoked after each successful
// announcement, with the finalized text.
func OnAnnounce(fn func(text string)) QueueOption {
	return func(q *Queue) { q.onAnnounce = fn }
}

// OnDrop registers a callback invoked when an utterance is discarded
// because its predicate returned false at dequeue time.
func OnDrop(fn func(u *Utterance)) QueueOption {
	return func(q *Queue) { q.onDrop = fn }
}

// NewQueue creates an inert alert queue.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		interval: DefaultInterval,
		enabled:  true,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// EnqueueText wraps text in a default utterance (no delay, no group, no
// predicate) and appends it to the queue.
func (q *Queue) EnqueueText(text string) {
	u, err := New(text)
	if err != nil {
		log.Warn("Alert queue: rejecting text", "err", err)
		return
	}
	q.EnqueueBack(u)
}

// EnqueueBack appends an utterance to the tail of the queue. If the
// queue is disabled the call is a silent no-op. Queued utterances
// sharing the new utterance's group are evicted first.
func (q *Queue) EnqueueBack(u *Utterance) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.enabled || u == nil {
		return
	}
	q.evictGroup(u.group)
	q.items = append(q.items, u)
	log.Debug("Alert queue: enqueued", "id", u.id, "group", u.group, "depth", len(q.items))
}

// EnqueueFront inserts an utterance at the head of the queue, ahead of
// everything currently pending. Group eviction and enablement rules
// match EnqueueBack; the item remains subject to its own delay gate.
func (q *Queue) EnqueueFront(u *Utterance) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.enabled || u == nil {
		return
	}
	q.evictGroup(u.group)
	q.items = append([]*Utterance{u}, q.items...)
	log.Debug("Alert queue: enqueued front", "id", u.id, "group", u.group, "depth", len(q.items))
}

// evictGroup removes every queued utterance with the given non-empty
// group key. Callers must hold q.mu.
func (q *Queue) evictGroup(group string) {
	if group == "" {
		return
	}
	kept := q.items[:0]
	for _, item := range q.items {
		if item.group == group {
			log.Debug("Alert queue: evicted by group", "id", item.id, "group", group)
			continue
		}
		kept = append(kept, item)
	}
	q.items = kept
}

// Clear empties the queue. Discarded utterances are never announced.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// Len returns the number of pending utterances.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// SetMuted controls whether announced text reaches the sink. A muted
// queue still dequeues items, still evaluates predicates and still
// advances announce counters.
func (q *Queue) SetMuted(muted bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.muted = muted
}

// Muted reports whether the queue is muted.
func (q *Queue) Muted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.muted
}

// SetEnabled controls whether the queue accepts and releases
// utterances. Unlike muting, a disabled queue consumes nothing.
func (q *Queue) SetEnabled(enabled bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enabled = enabled
}

// Enabled reports whether the queue is enabled.
func (q *Queue) Enabled() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.enabled
}

// SetInterval updates the tick period. The new period applies to
// residency accounting immediately and to the internal ticker if one is
// running.
func (q *Queue) SetInterval(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidInterval
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.interval = d
	if q.ticker != nil {
		q.ticker.Reset(d)
	}
	return nil
}

// Interval returns the tick period.
func (q *Queue) Interval() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.interval
}

// SetSink replaces the announcement sink.
func (q *Queue) SetSink(sink Announcer) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sink = sink
}

// Tick advances every queued utterance's residency time by one interval
// and releases at most one utterance: the first, scanning head to tail,
// whose residency strictly exceeds its delay. Items earlier in the scan
// with unsatisfied delay stay queued and keep accumulating time.
//
// The released utterance's predicate decides whether it is announced;
// on a false predicate it is dropped permanently. When the queue is
// muted the item is still consumed (its announce counter advances) but
// no text reaches the sink.
func (q *Queue) Tick() {
	q.mu.Lock()

	for _, item := range q.items {
		item.timeInQueue += q.interval
	}

	if !q.enabled {
		q.mu.Unlock()
		return
	}

	var next *Utterance
	for i, item := range q.items {
		if item.timeInQueue > item.delay {
			next = item
			q.items = append(q.items[:i], q.items[i+1:]...)
			break
		}
	}

	if next == nil {
		q.mu.Unlock()
		return
	}

	muted := q.muted
	sink := q.sink
	onAnnounce := q.onAnnounce
	onDrop := q.onDrop
	q.mu.Unlock()

	if !next.passes() {
		log.Debug("Alert queue: predicate dropped utterance", "id", next.id)
		if onDrop != nil {
			onDrop(next)
		}
		return
	}

	// The counter advances even when muted so unmuting resumes mid-list
	// rather than restarting.
	text := next.NextText()
	if muted {
		log.Debug("Alert queue: muted, consumed without announcing", "id", next.id)
		return
	}

	if sink == nil {
		log.Warn("Alert queue: no sink, dropping announcement", "text", text)
		return
	}
	if err := sink.Announce(text); err != nil {
		// No retry: stale spoken feedback is worse than silence.
		log.Error("Alert queue: sink failed", "err", err, "text", text)
		return
	}

	log.Debug("Alert queue: announced", "id", next.id, "text", text)
	if onAnnounce != nil {
		onAnnounce(text)
	}
}

// Start begins draining the queue from an internal ticker. The sink, if
// non-nil, replaces any sink configured earlier. Returns ErrQueueStarted
// if the ticker is already running.
func (q *Queue) Start(sink Announcer) error {
	q.mu.Lock()
	if q.ticker != nil {
		q.mu.Unlock()
		return ErrQueueStarted
	}
	if sink != nil {
		q.sink = sink
	}
	if q.sink == nil {
		q.mu.Unlock()
		return ErrNoSink
	}
	q.ticker = time.NewTicker(q.interval)
	q.done = make(chan struct{})
	ticker, done := q.ticker, q.done
	q.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				q.Tick()
			case <-done:
				return
			}
		}
	}()

	log.Debug("Alert queue: started", "interval", q.Interval())
	return nil
}

// Stop halts the internal ticker. Queue contents are left intact for
// inspection; Start may be called again later.
func (q *Queue) Stop() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ticker == nil {
		return ErrQueueNotStarted
	}
	q.ticker.Stop()
	close(q.done)
	q.ticker = nil
	q.done = nil
	return nil
}

// Running reports whether the internal ticker is active.
func (q *Queue) Running() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ticker != nil
}
