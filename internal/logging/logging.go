// Package logging builds the process logger and threads request-scoped
// loggers through context. There is no package-level logger: every component
// receives an explicitly constructed *slog.Logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

type Config struct {
	Format    string
	Level     slog.Level
	AddSource bool
}

// New returns a logger writing structured entries to out. The "json" format
// emits one JSON object per line with level, UTC timestamp, message and
// source location; any other format uses a tinted text handler for local
// development. Each call builds exactly one sink, so reconfiguring a service
// replaces the logger instead of stacking handlers.
func New(cfg Config, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.TimeValue(t.UTC())
				}
			}
			return a
		},
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = tint.NewHandler(out, &tint.Options{
			Level:      cfg.Level,
			AddSource:  cfg.AddSource,
			TimeFormat: time.Kitchen,
		})
	}

	return slog.New(handler)
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	requestIDKey
)

// WithRequestID stores the request correlation id on the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the correlation id for the request, or "" when the
// request carries none. Absence is not an error.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// IntoContext stores a request-scoped logger on the context.
func IntoContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the request-scoped logger, falling back to the given
// logger when the context carries none.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return fallback
}
