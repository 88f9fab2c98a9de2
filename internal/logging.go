package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const EnvLogLevel = "GITPLUG_LOG_LEVEL"

func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewFileLogger writes to a size-rotated log file, by default under the
// scope's logs directory. The returned closer releases the file.
func NewFileLogger(scope Scope, cfg LogConfig) (*slog.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		path = scope.LogPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}

	level := cfg.Level
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}

	return NewLogger(writer, ParseLevel(level)), writer, nil
}

func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
