package config

// ConfigurationError reports configuration that is structurally present but
// unusable for the selected mode, such as a missing base URL when the real
// client was requested.
type ConfigurationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return e.Message
}
