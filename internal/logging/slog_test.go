package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestErrWithNilError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("operation done", Err(nil))

	output := buf.String()
	if strings.Contains(output, "error=") {
		t.Errorf("Err(nil) should not emit an error attribute, got: %s", output)
	}
}

func TestErrWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("operation failed", Err(errTest))

	output := buf.String()
	if !strings.Contains(output, "error=") || !strings.Contains(output, "boom") {
		t.Errorf("expected error attribute in output, got: %s", output)
	}
}

var errTest = errString("boom")

type errString string

func (e errString) Error() string { return string(e) }

func TestSanitizeSecret(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty secret",
			input:    "",
			expected: "<empty>",
		},
		{
			name:     "short secret",
			input:    "abc",
			expected: "[secret:3 chars]",
		},
		{
			name:     "long secret",
			input:    strings.Repeat("x", 40),
			expected: "[secret:40 chars]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeSecret(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeSecret(%q) = %q, want %q", tt.input, result, tt.expected)
			}
			if tt.input != "" && strings.Contains(result, tt.input) {
				t.Errorf("SanitizeSecret leaked secret content: %q", result)
			}
		})
	}
}

func TestToolAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("executing", Tool("get_jama_projects"))

	if !strings.Contains(buf.String(), "tool=get_jama_projects") {
		t.Errorf("expected tool attribute, got: %s", buf.String())
	}
}
