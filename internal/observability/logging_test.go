package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdcockrum/cneos-explorer/internal/config"
)

func TestNewLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("json format", func(t *testing.T) {
		logger := NewLogger(&config.Config{LogLevel: "info", LogFormat: "json"})
		require.NotNil(t, logger)
		assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
	})

	t.Run("debug level", func(t *testing.T) {
		logger := NewLogger(&config.Config{LogLevel: "debug", LogFormat: "text"})
		assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		logger := NewLogger(&config.Config{LogLevel: "verbose", LogFormat: "json"})
		assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"uppercase", "DEBUG", slog.LevelDebug},
		{"unknown", "trace", slog.LevelInfo},
		{"empty", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}
