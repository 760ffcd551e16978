package alert

import "errors"

// Common errors for the alert system.
var (
	// Utterance construction errors
	ErrEmptyContent     = errors.New("utterance content cannot be empty")
	ErrLoopRequiresList = errors.New("loop requires list content")
	ErrNegativeDelay    = errors.New("utterance delay cannot be negative")

	// Queue errors
	ErrQueueStarted    = errors.New("alert queue already started")
	ErrQueueNotStarted = errors.New("alert queue not started")
	ErrNoSink          = errors.New("no announcement sink configured")
	ErrInvalidInterval = errors.New("tick interval must be positive")

	// Sink errors
	ErrSinkUnavailable = errors.New("announcement sink is not available")
)
