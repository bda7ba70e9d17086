package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "DEBUG", slog.LevelDebug},
		{"unknown", "verbose", slog.LevelInfo},
		{"empty", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.level); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestInitSetsGlobal(t *testing.T) {
	l := Init("debug", "json")
	if l == nil {
		t.Fatal("Init() returned nil")
	}
	if L != l {
		t.Error("Init() did not set the package logger")
	}
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level not enabled")
	}
}
