package server

import (
	"context"
	"log/slog"
	"sync"

	"jamamcp/internal/auth"
	"jamamcp/internal/config"
	"jamamcp/internal/instrumentation"
	"jamamcp/internal/jama"
	"jamamcp/internal/logging"
)

// Mode identifies which backend client the server was started with.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeReal Mode = "real"
)

// ServerContext holds the process-wide state for the MCP server. The Jama
// client is selected and constructed exactly once, before any tool handler
// runs, and never replaced afterwards. All tool handlers share this one
// handle.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	client jama.Client
	mode   Mode

	mu       sync.RWMutex
	metrics  *instrumentation.Metrics
	shutdown bool
}

// contextOptions carries optional ServerContext dependencies.
type contextOptions struct {
	logger   *slog.Logger
	resolver credentialResolver
	metrics  *instrumentation.Metrics
}

// credentialResolver matches auth.Resolver's Resolve method, allowing tests
// to substitute a fake.
type credentialResolver interface {
	Resolve(ctx context.Context) (auth.Credentials, auth.Source, error)
}

// ContextOption customizes a ServerContext.
type ContextOption func(*contextOptions)

// WithLogger sets the logger used during startup.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = logger
	}
}

// WithResolver injects a credential resolver, used by tests.
func WithResolver(resolver credentialResolver) ContextOption {
	return func(o *contextOptions) {
		o.resolver = resolver
	}
}

// WithMetrics attaches a metrics recorder. Supplying it at construction lets
// the credential resolution outcome be recorded; it is also what the tool
// instrumentation reads through Metrics().
func WithMetrics(m *instrumentation.Metrics) ContextOption {
	return func(o *contextOptions) {
		o.metrics = m
	}
}

// NewServerContext builds the server context from the loaded configuration.
// In mock mode the canned client is used and no credential material is
// touched. Otherwise credentials are resolved and the REST client is
// constructed before this function returns; any failure aborts startup and
// no tools are ever registered against a partially built context.
func NewServerContext(ctx context.Context, cfg *config.Config, opts ...ContextOption) (*ServerContext, error) {
	options := &contextOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	if cfg.Mock() {
		options.logger.Info("using mock Jama client, no credentials required",
			logging.Mode(string(ModeMock)))
		return &ServerContext{
			ctx:     shutdownCtx,
			cancel:  cancel,
			client:  jama.NewMockClient(),
			mode:    ModeMock,
			metrics: options.metrics,
		}, nil
	}

	// The URL is checked before credentials are resolved: there is no point
	// hitting a secrets backend for a client that cannot be constructed.
	if cfg.URL == "" {
		cancel()
		return nil, &config.ConfigurationError{
			Message: "JAMA_URL is required when mock mode is disabled",
		}
	}

	resolver := options.resolver
	if resolver == nil {
		resolver = auth.NewResolver(
			cfg.ClientID, cfg.ClientSecret,
			cfg.SecretPath, cfg.AWSProfile,
			auth.WithLogger(options.logger),
		)
	}

	creds, source, err := resolver.Resolve(shutdownCtx)
	// An empty source means no resolution route was even configured, which is
	// not a resolution attempt worth counting.
	if options.metrics != nil && source != "" {
		result := instrumentation.StatusSuccess
		if err != nil {
			result = instrumentation.StatusError
		}
		options.metrics.RecordCredentialResolution(shutdownCtx, string(source), result)
	}
	if err != nil {
		cancel()
		return nil, err
	}

	options.logger.Info("using real Jama client",
		logging.Mode(string(ModeReal)),
		slog.String("url", cfg.URL))

	return &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		client:  jama.NewRESTClient(shutdownCtx, cfg.URL, creds),
		mode:    ModeReal,
		metrics: options.metrics,
	}, nil
}

// Context returns the server's base context. It is canceled on Shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// JamaClient returns the backend client selected at startup. The returned
// handle is the same for every caller for the process lifetime.
func (sc *ServerContext) JamaClient() jama.Client {
	return sc.client
}

// Mode returns whether the server runs against the mock or the real backend.
func (sc *ServerContext) Mode() Mode {
	return sc.mode
}

// Metrics returns the metrics recorder, or nil if none was configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. It is safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
