package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := jsoniter.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestLogger_WritesKeyValuesAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo).WithService("courtside", "dev", "test")

	logger.Debug("hidden")
	logger.Warn("sink failed", "court", "Court 1", "error", errors.New("timeout"), "dangling")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry["level"] != "warn" || entry["msg"] != "sink failed" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["court"] != "Court 1" || entry["error"] != "timeout" || entry["service"] != "courtside" {
		t.Fatalf("missing fields: %v", entry)
	}
	if _, ok := entry["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept: %v", entry)
	}
}

func TestLogger_AppendsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelDebug)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "match started")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["trace_id"] != traceID.String() || entries[0]["span_id"] != spanID.String() {
		t.Fatalf("expected trace fields, got %v", entries[0])
	}
}

func TestLogger_NilUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewJSONTo(&buf, LevelInfo))
	t.Cleanup(func() { SetDefault(nil) })

	var logger *Logger
	logger.Info("fallback")

	if !strings.Contains(buf.String(), "fallback") {
		t.Fatalf("expected default logger to receive entry, got %q", buf.String())
	}
}
