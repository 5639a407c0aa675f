package internal

import (
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// DebugEnvVar switches the process logger to the colored debug handler when
// set to anything non-empty.
const DebugEnvVar = "TWEMPROXY_DEBUG"

func DebugFromEnvVar() bool {
	return strings.TrimSpace(os.Getenv(DebugEnvVar)) != ""
}

// NewLogger builds the stderr logger for the proxy process. With
// DebugEnvVar set the handler is tint's colored one, which makes the
// per-buffer debug lines scannable; otherwise plain text.
func NewLogger(level slog.Level) *slog.Logger {
	if DebugFromEnvVar() {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
