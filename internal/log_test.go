package internal_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/github101/twemproxy/internal"
)

func TestDebugFromEnvVar(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{
			name:     "unset",
			value:    "",
			expected: false,
		},
		{
			name:     "set to 1",
			value:    "1",
			expected: true,
		},
		{
			name:     "whitespace only",
			value:    "   ",
			expected: false,
		},
		{
			name:     "any word counts",
			value:    "yes",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(internal.DebugEnvVar, tt.value)
			if got := internal.DebugFromEnvVar(); got != tt.expected {
				t.Errorf("DebugFromEnvVar() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []string{"", "1"} {
		t.Setenv(internal.DebugEnvVar, debug)

		log := internal.NewLogger(slog.LevelInfo)
		if log == nil {
			t.Fatal("NewLogger returned nil")
		}
		if !log.Enabled(context.Background(), slog.LevelInfo) {
			t.Error("configured level is not enabled")
		}
		if log.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("levels below the configured one are enabled")
		}
	}
}
