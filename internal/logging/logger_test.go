package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("UIKEYS_LOG_LEVEL", "debug")
	t.Setenv("UIKEYS_LOG_FORMAT", "json")

	log := NewFromEnv()
	if log.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("got level %v", log.GetLevel())
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != zerolog.InfoLevel || cfg.Format != "console" {
		t.Fatalf("got %+v", cfg)
	}
}
