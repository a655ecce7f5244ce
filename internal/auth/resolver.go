package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"jamamcp/internal/logging"
)

// Credentials is a resolved OAuth client credential pair. It is held only in
// process memory for the process lifetime and never persisted.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Source identifies which resolution route produced the credentials.
type Source string

const (
	SourceDirect         Source = "direct-env"
	SourceSecretsManager Source = "secrets-manager"
)

// ssmClient is the subset of the SSM SDK client used by the resolver.
// This interface enables testing with a fake client.
type ssmClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Resolver produces a credential pair from the environment using a fixed
// precedence: direct variables first, then the SSM Parameter Store fallback.
// Resolution happens once at startup; the resolver holds no state between
// calls beyond its configuration.
type Resolver struct {
	clientID     string
	clientSecret string
	secretPath   string
	awsProfile   string

	logger *slog.Logger

	// client is the SSM API client. If nil, one is created lazily only when
	// the fallback route is actually taken.
	client ssmClient
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithSSMClient injects an SSM client, used by tests.
func WithSSMClient(client ssmClient) Option {
	return func(r *Resolver) {
		r.client = client
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver over the given configuration values.
// secretPath and awsProfile may be empty; empty credential values are
// treated as absent.
func NewResolver(clientID, clientSecret, secretPath, awsProfile string, opts ...Option) *Resolver {
	r := &Resolver{
		clientID:     clientID,
		clientSecret: clientSecret,
		secretPath:   secretPath,
		awsProfile:   awsProfile,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the credential pair and the route that produced it, or a
// typed *Error describing why no pair could be obtained. On failure the
// returned Source still names the route that was attempted; it is empty only
// when no route was configured at all. Credential values are never logged.
func (r *Resolver) Resolve(ctx context.Context) (Credentials, Source, error) {
	// Direct variables win unconditionally, even when a secret path is also
	// configured. This keeps local and test runs free of any AWS dependency.
	if r.clientID != "" && r.clientSecret != "" {
		r.logger.Info("using Jama credentials from environment variables",
			slog.String(logging.KeySource, string(SourceDirect)),
			slog.String("client_secret", logging.SanitizeSecret(r.clientSecret)))
		return Credentials{ClientID: r.clientID, ClientSecret: r.clientSecret}, SourceDirect, nil
	}

	if r.secretPath != "" {
		creds, err := r.resolveFromSecretsManager(ctx)
		return creds, SourceSecretsManager, err
	}

	return Credentials{}, "", &Error{
		Kind: KindMissingCredentials,
		Message: "no Jama OAuth credentials configured; set JAMA_CLIENT_ID and " +
			"JAMA_CLIENT_SECRET, or set JAMA_AWS_SECRET_PATH for the secrets-manager fallback",
	}
}

func (r *Resolver) resolveFromSecretsManager(ctx context.Context) (Credentials, error) {
	r.logger.Info("fetching Jama credentials from SSM Parameter Store",
		slog.String(logging.KeySource, string(SourceSecretsManager)),
		logging.SecretPath(r.secretPath),
		slog.String(logging.KeyProfile, profileOrDefault(r.awsProfile)))

	if err := r.ensureClient(ctx); err != nil {
		return Credentials{}, err
	}

	param, err := r.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(r.secretPath),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return Credentials{}, &Error{
			Kind:    KindBackendAccess,
			Path:    r.secretPath,
			Message: fmt.Sprintf("fetching secret %q from SSM Parameter Store", r.secretPath),
			Err:     err,
		}
	}
	if param.Parameter == nil || param.Parameter.Value == nil {
		return Credentials{}, &Error{
			Kind:    KindBackendAccess,
			Path:    r.secretPath,
			Message: fmt.Sprintf("SSM returned no value for secret %q", r.secretPath),
		}
	}

	creds, err := parseSecret(*param.Parameter.Value, r.secretPath)
	if err != nil {
		return Credentials{}, err
	}

	r.logger.Info("resolved Jama credentials from SSM Parameter Store",
		logging.SecretPath(r.secretPath),
		slog.String("client_secret", logging.SanitizeSecret(creds.ClientSecret)))
	return creds, nil
}

// ensureClient initializes the SSM client if it has not been created yet.
// A failure here means the secrets-manager integration itself is unusable,
// which is reported distinctly from a failed fetch.
func (r *Resolver) ensureClient(ctx context.Context) error {
	if r.client != nil {
		return nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if r.awsProfile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(r.awsProfile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return &Error{
			Kind:    KindBackendUnavailable,
			Path:    r.secretPath,
			Message: fmt.Sprintf("loading AWS config (profile=%s)", profileOrDefault(r.awsProfile)),
			Err:     err,
		}
	}

	r.client = ssm.NewFromConfig(cfg)
	return nil
}

// secretPayload is the required shape of the stored secret.
type secretPayload struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

func parseSecret(raw, path string) (Credentials, error) {
	var payload secretPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Credentials{}, &Error{
			Kind:    KindInvalidSecretFormat,
			Path:    path,
			Message: fmt.Sprintf("secret %q is not valid JSON", path),
			Err:     err,
		}
	}
	if payload.ClientID == "" || payload.ClientSecret == "" {
		return Credentials{}, &Error{
			Kind:    KindInvalidSecretFormat,
			Path:    path,
			Message: fmt.Sprintf("secret %q must contain non-empty client_id and client_secret keys", path),
		}
	}
	return Credentials{ClientID: payload.ClientID, ClientSecret: payload.ClientSecret}, nil
}

func profileOrDefault(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}
