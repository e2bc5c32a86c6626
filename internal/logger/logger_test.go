package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"info", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, "ParseLevel(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseLevel(%q)", tt.in)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, `"verbose"`)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "dbug"})
	assert.ErrorContains(t, err, "unknown log level")
}

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "debug", Encoding: "console"})
	require.NoError(t, err)
	l.Debug("hello", String("k", "v"))
}

func TestWrap_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core)).With(String("component", "apiclient"))

	l.Warn("request failed", Int("status", 502), Err(errors.New("boom")))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request failed", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "apiclient", fields["component"])
	assert.Equal(t, int64(502), fields["status"])
	assert.Equal(t, "boom", fields["error"])
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, NewNop(), FromContext(context.Background()))

	core, logs := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), Wrap(zap.New(core)))
	FromContext(ctx).Info("stored")
	assert.Equal(t, 1, logs.Len())
}
