// Package logging builds the charmbracelet/log loggers used by the TUI
// and the proxy server.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps a config string to a level. Unknown or empty values
// fall back to info.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
	})
}

// NewFile logs to a rotating file so the terminal UI is left alone.
// The returned closer flushes and closes the file.
func NewFile(path, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	logger := log.NewWithOptions(rotator, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
	})
	return logger, rotator, nil
}
