package cli

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"eventnite/internal/types"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFormatEventLine(t *testing.T) {
	ev := types.Event{
		Name:            "Game Night",
		Date:            time.Date(2026, 9, 1, 19, 0, 0, 0, time.FixedZone("EST", -5*3600)),
		Hours:           2,
		SubscriberCount: 3,
		RemoteID:        42,
	}

	line := formatEventLine(ev)
	for _, want := range []string{"Game Night", "2026-09-01 19:00 EST", "42"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}
