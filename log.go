package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// setupLog configures the global logger. Logs are discarded unless
// SIMKIT_LOGFILE names a file; SIMKIT_DEBUG raises the level to debug.
// Returns a closer for the log file.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)

	logFile := os.Getenv("SIMKIT_LOGFILE")
	if logFile == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
	if err != nil {
		return nil, err
	}

	log.SetOutput(f)
	log.SetTimeFormat(time.Kitchen)
	if os.Getenv("SIMKIT_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}
	log.Debug("logging initialized", "file", logFile)

	return f.Close, nil
}
