package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/jeffcwolf/metadata-explorer/pkg/observability"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var rec map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	return rec
}

func TestTracingHandler_InjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(observability.NewTracingHandler(inner, "explorer", "test", observability.ModeServe))

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "dataset loaded")

	rec := decodeLine(t, &buf)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", rec["trace_id"])
	assert.Equal(t, "0102030405060708", rec["span_id"])
	assert.Equal(t, "explorer", rec["service"])
	assert.Equal(t, "test", rec["env"])
	assert.Equal(t, "serve", rec["mode"])
}

func TestTracingHandler_NoSpan(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(observability.NewTracingHandler(inner, "explorer", "", observability.ModeMCP))

	logger.Info("no span")

	rec := decodeLine(t, &buf)
	assert.NotContains(t, rec, "trace_id")
	assert.NotContains(t, rec, "env")
	assert.Equal(t, "mcp", rec["mode"])
}

func TestTracingHandler_GroupKeepsServiceTopLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(observability.NewTracingHandler(inner, "explorer", "", observability.ModeCLI))

	logger.WithGroup("load").With("path", "a.json").Info("grouped")

	rec := decodeLine(t, &buf)
	assert.Equal(t, "explorer", rec["service"])

	group, ok := rec["load"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a.json", group["path"])
}

func TestNewLogger_RespectsLevelAndFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.LogLevel = slog.LevelWarn

	logger := observability.NewLogger(&buf, cfg)
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")

	rec := decodeLine(t, &buf)
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "metadata-explorer", rec["service"])
}
