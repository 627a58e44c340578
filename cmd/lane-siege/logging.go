package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "lane-siege.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a discarding logger unless debug is set
// With debug, logs go to logs/lane-siege.log, rotated when it exceeds maxLogSize;
// the terminal is owned by the UI so nothing is written to stdout or stderr
func setupLogging(debug bool) (*os.File, *slog.Logger) {
	if !debug {
		return nil, slog.New(slog.DiscardHandler)
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, slog.New(slog.DiscardHandler)
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("lane-siege-%s.log", time.Now().Format("20060102-150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, slog.New(slog.DiscardHandler)
	}
	return f, newLogger(f, slog.LevelDebug)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
