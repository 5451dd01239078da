package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"

	"github.com/yourorg/listings-web/internal/config"
)

// New builds the process logger. The returned closer flushes the fluent
// client when forwarding is enabled and is a no-op otherwise.
func New(cfg config.LogConfig, appName string, w io.Writer) (*slog.Logger, io.Closer, error) {
	if w == nil {
		w = os.Stdout
	}
	level := ParseLevel(cfg.Level)

	var stdout slog.Handler
	switch {
	case strings.EqualFold(cfg.Format, "json"):
		stdout = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case cfg.Color:
		stdout = tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: "2006-01-02 15:04:05"})
	default:
		stdout = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}

	if !cfg.FluentEnabled {
		return slog.New(stdout).With("service_name", appName), nopCloser{}, nil
	}

	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.FluentHost,
		FluentPort: cfg.FluentPort,
		TagPrefix:  appName,
		Async:      true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create fluent client: %w", err)
	}
	h := Fanout(stdout, NewFluentHandler(client, level))
	return slog.New(h).With("service_name", appName), client, nil
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Discard returns a logger that drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
