package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func debugSlog(buf *bytes.Buffer) *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func TestSlogLogger_EachLevel(t *testing.T) {
	ctx := context.Background()
	emit := map[string]func(l Logger){
		"DEBUG": func(l Logger) { l.Debug(ctx, "cache miss", "key", "session.token") },
		"INFO":  func(l Logger) { l.Info(ctx, "cache miss", "key", "session.token") },
		"WARN":  func(l Logger) { l.Warn(ctx, "cache miss", "key", "session.token") },
		"ERROR": func(l Logger) { l.Error(ctx, "cache miss", "key", "session.token") },
	}
	for level, fn := range emit {
		t.Run(level, func(t *testing.T) {
			var buf bytes.Buffer
			fn(debugSlog(&buf))

			line := buf.String()
			assert.Contains(t, line, "level="+level)
			assert.Contains(t, line, `msg="cache miss"`)
			assert.Contains(t, line, "key=session.token")
		})
	}
}

func TestSlogLogger_WithKeepsParentUntouched(t *testing.T) {
	var buf bytes.Buffer
	parent := debugSlog(&buf)
	child := parent.With("component", "browser")

	child.Info(context.Background(), "projects loaded", "count", 3)
	parent.Info(context.Background(), "plain")

	out := buf.String()
	assert.Contains(t, out, "component=browser")
	assert.Contains(t, out, "count=3")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("component=browser")))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestNewTextLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "warn")

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
