package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	logDir      = "logs"
	logFileName = "vi-tracker.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging builds the application logger. The terminal belongs to the
// session, so without debug everything is discarded and with debug it goes
// to path (logs/vi-tracker.log when empty). An oversized log is rotated aside.
// The returned file is nil when nothing was opened.
func setupLogging(debug bool, path string) (*log.Logger, *os.File, error) {
	if !debug {
		return log.New(io.Discard), nil, nil
	}

	if path == "" {
		path = filepath.Join(logDir, logFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s.%s%s", path[:len(path)-len(ext)], time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			return nil, nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "vi-tracker",
	})
	return logger, f, nil
}
