// Package instrumentation provides OpenTelemetry instrumentation for the
// Jama MCP server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for credential resolution, Jama API calls, and tool invocations
//   - Distributed tracing for request flows and API calls
//   - Prometheus metrics export via /metrics endpoint on dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Jama API Metrics:
//   - jama_api_operations_total: Counter of Jama API operations by operation and status
//   - jama_api_operation_duration_seconds: Histogram of Jama API operation durations
//
// Credential Resolution Metrics:
//   - credential_resolutions_total: Counter of credential resolution attempts by source and result
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - MCP tool invocations (tool.<name>)
//   - Jama API calls (jama.<operation>)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: jamamcp)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "jamamcp",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordJamaAPIOperation(ctx, "get", "success", time.Since(start))
//	recorder.RecordToolInvocation(ctx, "get_jama_item", "success", time.Since(start))
package instrumentation
