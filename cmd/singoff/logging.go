package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogger builds a stderr logger at the given level.
func setupLogger(level string) *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(parseLevel(level))
	return logger
}

// setupFileLogger logs to a file so the terminal stays free for the TUI.
// An empty path discards everything.
func setupFileLogger(path string, level string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(f)
	logger.SetLevel(parseLevel(level))
	return logger, func() { _ = f.Close() }, nil
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
