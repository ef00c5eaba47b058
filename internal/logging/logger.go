// Package logging provides the logger handed down to every component.
//
// The host builds one root Logger with New and passes it (or a Child of it)
// explicitly. There is no package-level default.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LevelSilent sits above every slog level and suppresses all output
const LevelSilent = slog.Level(12)

// Logger is the logging contract consumed by the adapters and the registrar
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// Child returns a logger whose messages carry "parent:name" as prefix
	Child(name string) Logger
}

// Options configures New
type Options struct {
	Level  string    // debug, info, warn, error or silent
	Format string    // "json" or "text"
	Output io.Writer // defaults to os.Stdout
	Prefix string
}

// New builds the root logger. Text output goes through tint, json through
// slog's JSON handler.
func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	level := ParseLevel(opts.Level)

	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		// Pretty colored output for console
		handler = tint.NewHandler(out, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
			NoColor:    out != os.Stdout,
		})
	}

	return &slogLogger{log: slog.New(handler), prefix: opts.Prefix}
}

// FromSlog wraps an existing slog logger
func FromSlog(l *slog.Logger, prefix string) Logger {
	return &slogLogger{log: l, prefix: prefix}
}

// Nop discards everything
func Nop() Logger {
	return &slogLogger{log: slog.New(discardHandler{})}
}

// ParseLevel maps a level name onto a slog level; unknown names mean info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "silent", "off", "none":
		return LevelSilent
	default:
		return slog.LevelInfo
	}
}

type slogLogger struct {
	log    *slog.Logger
	prefix string
}

func (l *slogLogger) Debug(msg string, args ...any) { l.log.Debug(l.format(msg), args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.log.Info(l.format(msg), args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.log.Warn(l.format(msg), args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.log.Error(l.format(msg), args...) }

func (l *slogLogger) Child(name string) Logger {
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + ":" + name
	}
	return &slogLogger{log: l.log, prefix: prefix}
}

func (l *slogLogger) format(msg string) string {
	if l.prefix == "" {
		return msg
	}
	return fmt.Sprintf("[%s] %s", l.prefix, msg)
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
