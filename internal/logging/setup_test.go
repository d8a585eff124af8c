package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupHandlerText(t *testing.T) {
	tests := []struct {
		name       string
		logLevel   string
		logAt      func(*slog.Logger)
		expectOut  bool
		expectTime bool
	}{
		{
			name:      "info level passes info",
			logLevel:  "info",
			logAt:     func(l *slog.Logger) { l.Info("test message", "key", "value") },
			expectOut: true,
		},
		{
			name:      "info level drops debug",
			logLevel:  "info",
			logAt:     func(l *slog.Logger) { l.Debug("test message") },
			expectOut: false,
		},
		{
			name:       "debug level has timestamps",
			logLevel:   "debug",
			logAt:      func(l *slog.Logger) { l.Debug("test message") },
			expectOut:  true,
			expectTime: true,
		},
		{
			name:      "error level drops warnings",
			logLevel:  "error",
			logAt:     func(l *slog.Logger) { l.Warn("test message") },
			expectOut: false,
		},
		{
			name:      "mixed case level",
			logLevel:  "DeBuG",
			logAt:     func(l *slog.Logger) { l.Debug("test message") },
			expectOut: true,
		},
		{
			name:      "unknown level falls back to info",
			logLevel:  "loud",
			logAt:     func(l *slog.Logger) { l.Info("test message") },
			expectOut: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := SetupHandlerText(tt.logLevel, &buf)
			require.NotNil(t, handler)

			tt.logAt(slog.New(handler))

			output := buf.String()
			if !tt.expectOut {
				assert.Empty(t, output)
				return
			}
			assert.Contains(t, output, "test message")
		})
	}
}

func TestSetupHandlerJSON(t *testing.T) {
	var buf bytes.Buffer
	handler := SetupHandlerJSON("debug", &buf)
	require.NotNil(t, handler)

	slog.New(handler).Debug("structured entry", "run", "abc")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "structured entry", rec["msg"])
	assert.Equal(t, "abc", rec["run"])
}

func TestSetupLogger(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	SetupLogger("debug")
	assert.NotEqual(t, originalLogger, slog.Default())
}

func TestLevelFromEnv(t *testing.T) {
	t.Run("unset returns fallback", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "")
		assert.Equal(t, "info", LevelFromEnv("info"))
	})

	t.Run("set value wins", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "debug")
		assert.Equal(t, "debug", LevelFromEnv("info"))
	})

	t.Run("whitespace is ignored", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "  ")
		assert.Equal(t, "warn", LevelFromEnv("warn"))
	})
}
