package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Level: slog.LevelInfo, AddSource: true}, &buf)

	log.Info("hello", slog.String("user_id", "u-1"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "source")
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Level: slog.LevelInfo}, &buf)

	log.Debug("filtered out")
	assert.Empty(t, buf.String())

	log.Error("kept")
	assert.NotEmpty(t, buf.String())
}

// Rebuilding the logger replaces the sink instead of stacking handlers:
// each entry appears exactly once no matter how many times New ran.
func TestNewIsIdempotent(t *testing.T) {
	var buf bytes.Buffer

	New(Config{Format: "json", Level: slog.LevelInfo}, &buf)
	log := New(Config{Format: "json", Level: slog.LevelInfo}, &buf)

	log.Info("once")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestFromContextFallback(t *testing.T) {
	fallback := New(Config{Format: "json", Level: slog.LevelInfo}, io.Discard)

	got := FromContext(context.Background(), fallback)
	assert.Same(t, fallback, got)

	var buf bytes.Buffer
	scoped := New(Config{Format: "json", Level: slog.LevelInfo}, &buf).
		With(slog.String("request_id", "req-1"))
	ctx := IntoContext(context.Background(), scoped)

	FromContext(ctx, fallback).Info("tagged")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
}
