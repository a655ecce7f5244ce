// Package config loads the Jama Connect server configuration from the
// process environment.
//
// Recognized variables:
//
//	JAMA_MOCK_MODE        "true" runs the server against the built-in mock client
//	JAMA_URL              Jama Connect base URL (required outside mock mode)
//	JAMA_CLIENT_ID        OAuth client ID (direct credentials, highest precedence)
//	JAMA_CLIENT_SECRET    OAuth client secret
//	JAMA_AWS_SECRET_PATH  SSM Parameter Store path for the credential secret
//	JAMA_AWS_PROFILE      optional AWS shared-config profile for SSM access
//
// Configuration is read exactly once at startup; there is no re-resolution
// or refresh mid-run.
package config
