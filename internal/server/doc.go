// Package server provides the MCP server context, health checking, and the
// dedicated metrics server for the jamamcp application.
//
// # Key Components
//
// ServerContext selects and constructs the Jama backend client exactly once
// at startup, before any tools are registered. In mock mode a canned
// in-memory client is used and no credential material is touched; otherwise
// credentials are resolved (directly from the environment or via the AWS
// secrets-manager fallback) and a REST client is built. A failure at any
// point aborts startup so that tool handlers never observe a missing or
// half-initialized client.
//
// HealthChecker exposes /healthz and /readyz endpoints for Kubernetes
// probes. MetricsServer serves Prometheus metrics on a dedicated port,
// keeping operational metrics off the main application listener.
package server
