package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// L is the process-wide logger configured by Init.
var L = slog.Default()

// Options controls where and how log records are written.
type Options struct {
	Level  string
	Format string
	// File, when set, receives a copy of every record with size-based rotation.
	File string
}

// Init configures L and installs it as the slog default.
func Init(level, format string) {
	InitWithOptions(Options{Level: level, Format: format})
}

// InitWithOptions is Init with an optional rotated log file.
func InitWithOptions(opts Options) {
	var out io.Writer = os.Stderr
	if strings.TrimSpace(opts.File) != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		})
	}
	L = New(out, opts.Level, opts.Format)
	slog.SetDefault(L)
}

// New builds a logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
