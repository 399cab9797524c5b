package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Expected default pretty to be false")
	}
	if cfg.Output == nil {
		t.Error("Expected default output to be set")
	}
}

func TestSetup_WritesAtConfiguredLevel(t *testing.T) {
	tests := []struct {
		name  string
		level LogLevel
		emit  func(l zerolog.Logger, msg string)
	}{
		{"debug", LevelDebug, func(l zerolog.Logger, msg string) { l.Debug().Msg(msg) }},
		{"info", LevelInfo, func(l zerolog.Logger, msg string) { l.Info().Msg(msg) }},
		{"warn", LevelWarn, func(l zerolog.Logger, msg string) { l.Warn().Msg(msg) }},
		{"error", LevelError, func(l zerolog.Logger, msg string) { l.Error().Msg(msg) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{Level: tt.level, Output: buf})

			tt.emit(logger, "page served")

			if !strings.Contains(buf.String(), "page served") {
				t.Errorf("Expected output to contain message, got %q", buf.String())
			}
		})
	}
}

func TestSetup_NilOutputFallsBackToStderr(t *testing.T) {
	logger := Setup(Config{Level: LevelError})
	// Must not panic.
	logger.Debug().Msg("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_AddsComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	logger := NewLogger("news-service")
	logger.Info().Msg("refreshed")

	out := buf.String()
	if !strings.Contains(out, `"component":"news-service"`) {
		t.Errorf("Expected component field, got %q", out)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelWarn, Output: buf})

	logger := NewLogger("test")
	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")
	logger.Warn().Msg("warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("Messages below warn should be filtered, got %q", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Error("Warn message should be included at Warn level")
	}
}

func TestContextLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf})

	fallback := zerolog.New(&bytes.Buffer{})
	reqLogger := zerolog.New(buf).With().Str("request_id", "abc").Logger()

	ctx := WithContext(context.Background(), reqLogger)
	scoped := FromContext(ctx, fallback)
	scoped.Info().Msg("scoped")

	if !strings.Contains(buf.String(), `"request_id":"abc"`) {
		t.Errorf("Expected request-scoped field, got %q", buf.String())
	}

	got := FromContext(context.Background(), fallback)
	if got.GetLevel() != fallback.GetLevel() {
		t.Error("Expected fallback logger for empty context")
	}
}
