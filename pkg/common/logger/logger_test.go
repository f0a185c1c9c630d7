package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ponyatov/kb/pkg/common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.Config{
		Level:  logger.LevelInfo,
		Format: logger.FormatText,
		Output: buf,
	})

	log.Debug("debug message")
	assert.NotContains(t, buf.String(), "debug message", "debug should be filtered at Info level")

	buf.Reset()
	log.Info("info message")
	assert.Contains(t, buf.String(), "info message")

	buf.Reset()
	log.Warn("warn message")
	assert.Contains(t, buf.String(), "warn message")

	buf.Reset()
	log.Error("error message")
	assert.Contains(t, buf.String(), "error message")
}

func TestStructuredText(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.Config{Level: logger.LevelDebug, Format: logger.FormatText, Output: buf})

	log.Debug("captured arguments", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "captured arguments")
	assert.Contains(t, out, "count=3")
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.Config{Level: logger.LevelInfo, Format: logger.FormatJSON, Output: buf})

	log.Info("test message", "key", "value")

	assert.Contains(t, buf.String(), `"msg":"test message"`)
	assert.Contains(t, buf.String(), `"key":"value"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logger.Level
		wantErr bool
	}{
		{"debug", logger.LevelDebug, false},
		{"INFO", logger.LevelInfo, false},
		{"", logger.LevelInfo, false},
		{"warning", logger.LevelWarn, false},
		{" error ", logger.LevelError, false},
		{"trace", logger.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := logger.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatJSON, f)

	f, err = logger.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatText, f)

	_, err = logger.ParseFormat("xml")
	assert.Error(t, err)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", logger.LevelDebug.String())
	assert.Equal(t, "warn", logger.LevelWarn.String())
	assert.Equal(t, "info", logger.Level(42).String())
}

func TestContextRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.Config{Level: logger.LevelInfo, Output: buf})

	ctx := logger.WithLogger(context.Background(), log)
	logger.FromContext(ctx).Info("from context")

	assert.True(t, strings.Contains(buf.String(), "from context"))
	assert.Same(t, logger.Default, logger.FromContext(context.Background()))
}

func TestDefaultLogger(t *testing.T) {
	require.NotNil(t, logger.Default)

	orig := logger.Default
	t.Cleanup(func() { logger.Default = orig })

	buf := &bytes.Buffer{}
	logger.Default = logger.New(logger.Config{Level: logger.LevelInfo, Output: buf})

	logger.Info("test message")
	assert.Contains(t, buf.String(), "test message")
}
