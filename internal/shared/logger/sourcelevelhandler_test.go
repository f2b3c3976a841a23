package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSourceLevelHandler(t *testing.T) {
	tests := []struct {
		name         string
		level        slog.Level
		sourceLevels []slog.Level
		wantSource   bool
	}{
		{
			name:         "info without source config",
			level:        slog.LevelInfo,
			sourceLevels: []slog.Level{slog.LevelWarn, slog.LevelError},
			wantSource:   false,
		},
		{
			name:         "warn with source config",
			level:        slog.LevelWarn,
			sourceLevels: []slog.Level{slog.LevelWarn, slog.LevelError},
			wantSource:   true,
		},
		{
			name:         "error with source config",
			level:        slog.LevelError,
			sourceLevels: []slog.Level{slog.LevelWarn, slog.LevelError},
			wantSource:   true,
		},
		{
			name:         "debug without source config",
			level:        slog.LevelDebug,
			sourceLevels: []slog.Level{slog.LevelWarn, slog.LevelError},
			wantSource:   false,
		},
		{
			name:         "info with all levels configured",
			level:        slog.LevelInfo,
			sourceLevels: []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError},
			wantSource:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			})
			log := slog.New(NewSourceLevelHandler(base, tt.sourceLevels...))

			log.Log(context.Background(), tt.level, "probe")

			gotSource := strings.Contains(buf.String(), "source=")
			if gotSource != tt.wantSource {
				t.Errorf("source attribute present = %v, want %v, output: %s", gotSource, tt.wantSource, buf.String())
			}
		})
	}
}

func TestSourceLevelHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{AddSource: false})
	log := slog.New(NewSourceLevelHandler(base, slog.LevelError)).With("component", "test")

	log.Error("boom")

	out := buf.String()
	if !strings.Contains(out, "component=test") {
		t.Errorf("expected component attribute, got: %s", out)
	}
	if !strings.Contains(out, "source=") {
		t.Errorf("expected source attribute on error level, got: %s", out)
	}
}
