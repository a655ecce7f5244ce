package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the Jama Connect connection configuration, read from the
// process environment once at startup. A changed variable has no effect
// until the server restarts.
type Config struct {
	// MockMode selects the mock client when set to "true" (case-insensitive).
	// Any other value, or absence, selects the real client.
	MockMode string `envconfig:"JAMA_MOCK_MODE"`

	// URL is the Jama Connect base URL, e.g. https://example.jamacloud.com.
	// Required when not in mock mode.
	URL string `envconfig:"JAMA_URL" validate:"omitempty,url"`

	// ClientID and ClientSecret are the direct OAuth credentials. When both
	// are set they take precedence over the secrets-manager fallback.
	ClientID     string `envconfig:"JAMA_CLIENT_ID"`
	ClientSecret string `envconfig:"JAMA_CLIENT_SECRET"`

	// SecretPath is the AWS SSM Parameter Store path holding a JSON secret
	// with client_id and client_secret keys. Used only when the direct
	// credentials are absent.
	SecretPath string `envconfig:"JAMA_AWS_SECRET_PATH"`

	// AWSProfile is an optional shared-config profile for the SSM client.
	// The default credential chain is used when unset.
	AWSProfile string `envconfig:"JAMA_AWS_PROFILE"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first if present; its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Mock reports whether mock mode is enabled. Only the literal string "true"
// (in any case) enables it.
func (c *Config) Mock() bool {
	return strings.EqualFold(c.MockMode, "true")
}
