package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyTool       = "tool"
	KeyMode       = "mode"
	KeyStatus     = "status"
	KeyError      = "error"
	KeyDuration   = "duration"
	KeySource     = "source"
	KeySecretPath = "secret_path"
	KeyProfile    = "aws_profile"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Setup installs the default slog logger. Logs go to stderr so that the
// stdio MCP transport keeps stdout for protocol frames.
func Setup(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	SetupWithWriter(os.Stderr, level)
}

// SetupWithWriter installs a text slog handler writing to w at the given level.
func SetupWithWriter(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Mode returns a slog attribute for the client mode (mock or real).
func Mode(mode string) slog.Attr {
	return slog.String(KeyMode, mode)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// SecretPath returns a slog attribute for a secrets-manager parameter path.
// The path is safe to log; the value it resolves to never is.
func SecretPath(path string) slog.Attr {
	return slog.String(KeySecretPath, path)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that slog omits from output,
// so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeSecret returns a masked representation of a credential for logging.
// Only the length is revealed; even short prefixes of client secrets can aid
// brute-force attacks.
func SanitizeSecret(secret string) string {
	if secret == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[secret:%d chars]", len(secret))
}
