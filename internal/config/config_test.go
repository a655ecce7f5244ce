package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearJamaEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"JAMA_MOCK_MODE",
		"JAMA_URL",
		"JAMA_CLIENT_ID",
		"JAMA_CLIENT_SECRET",
		"JAMA_AWS_SECRET_PATH",
		"JAMA_AWS_PROFILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadReadsAllVariables(t *testing.T) {
	clearJamaEnv(t)
	t.Setenv("JAMA_MOCK_MODE", "false")
	t.Setenv("JAMA_URL", "https://example.jamacloud.com")
	t.Setenv("JAMA_CLIENT_ID", "client-a")
	t.Setenv("JAMA_CLIENT_SECRET", "secret-b")
	t.Setenv("JAMA_AWS_SECRET_PATH", "/jama/prod/oauth")
	t.Setenv("JAMA_AWS_PROFILE", "prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.jamacloud.com", cfg.URL)
	assert.Equal(t, "client-a", cfg.ClientID)
	assert.Equal(t, "secret-b", cfg.ClientSecret)
	assert.Equal(t, "/jama/prod/oauth", cfg.SecretPath)
	assert.Equal(t, "prod", cfg.AWSProfile)
	assert.False(t, cfg.Mock())
}

func TestLoadWithEmptyEnvironment(t *testing.T) {
	clearJamaEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.URL)
	assert.Empty(t, cfg.ClientID)
	assert.False(t, cfg.Mock())
}

func TestLoadRejectsMalformedURL(t *testing.T) {
	clearJamaEnv(t)
	t.Setenv("JAMA_URL", "not a url")

	_, err := Load()
	assert.Error(t, err)
}

func TestMock(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "lowercase true", value: "true", expected: true},
		{name: "uppercase true", value: "TRUE", expected: true},
		{name: "mixed case", value: "True", expected: true},
		{name: "absent", value: "", expected: false},
		{name: "false", value: "false", expected: false},
		{name: "numeric one is not mock", value: "1", expected: false},
		{name: "yes is not mock", value: "yes", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{MockMode: tt.value}
			assert.Equal(t, tt.expected, cfg.Mock())
		})
	}
}
