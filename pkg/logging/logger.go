// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(string(level))) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// WithContext stores a request-scoped logger in ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the request-scoped logger stored in ctx, or fallback
// when ctx carries none.
func FromContext(ctx context.Context, fallback zerolog.Logger) zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l == nil || l.GetLevel() == zerolog.Disabled {
		return fallback
	}
	return *l
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Cache operations (hit/miss, key, expiry)
//   - Per-item upstream requests
//   - Worker pool start/stop
//
// Info: Normal operation events
//   - Identifier list refreshed from upstream
//   - HTTP requests served
//   - Server startup/shutdown
//
// Warn: Warning conditions that don't prevent operation
//   - Store read/write errors (falls back to upstream)
//   - Single item could not be resolved (item omitted)
//
// Error: Error conditions requiring attention
//   - Identifier list unavailable (response degraded to empty)
//   - Recovered panics
//   - Configuration errors
//
// Context Fields:
//   - component: emitting package
//   - operation: core operation name
//   - page, page_size, search: page request parameters
//   - item_id: upstream item identifier
//   - endpoint: logical upstream endpoint (new_stories, item)
//   - status: HTTP status code
//   - request_id: X-Request-Id of the inbound request
//   - duration: elapsed time
