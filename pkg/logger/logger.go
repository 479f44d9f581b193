package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance
var log zerolog.Logger

// ContextKey for storing logger in context
type ctxKey struct{}

// Init configures the global logger. Development runs get a console
// writer; every other environment logs JSON lines to stdout.
func Init(env string, logLevel string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log = New(env, logLevel, os.Stdout)
}

// New builds a logger writing to out at the given level. An unknown level
// falls back to info.
func New(env string, logLevel string, out io.Writer) zerolog.Logger {
	if env == "development" || env == "dev" || env == "" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil || level == zerolog.NoLevel || logLevel == "" {
		level = zerolog.InfoLevel
	}
	if logLevel == "warning" {
		level = zerolog.WarnLevel
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Get returns the global logger
func Get() *zerolog.Logger {
	return &log
}

// WithContext returns a logger with context
func WithContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &log
}

// NewContext creates a new context with the logger
func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithRequestID adds a request ID to the logger
func WithRequestID(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}

// WithSessionID adds a storefront session ID to the logger
func WithSessionID(l zerolog.Logger, sessionID string) zerolog.Logger {
	return l.With().Str("session_id", sessionID).Logger()
}

// --- Convenience Methods ---

// Warn logs a warning message
func Warn() *zerolog.Event {
	return log.Warn()
}

// --- Structured Logging Helpers ---

// SnapshotOp logs a snapshot storage call
func SnapshotOp(ctx context.Context, op, key string, duration time.Duration, err error) {
	event := WithContext(ctx).Debug().
		Str("op", op).
		Str("key", key).
		Dur("duration_ms", duration)

	if err != nil {
		event.Err(err).Msg("Snapshot Op Failed")
	} else {
		event.Msg("Snapshot Op")
	}
}

// ServiceStart logs service startup
func ServiceStart(name, version, port string) {
	log.Info().
		Str("service", name).
		Str("version", version).
		Str("port", port).
		Msg("Service Started")
}

// ServiceStop logs service shutdown
func ServiceStop(name string) {
	log.Info().
		Str("service", name).
		Msg("Service Stopped")
}
