// Package server provides the MCP server context, health checks, and the
// HTTP transport for the graphmail application.
//
// # Key Components
//
// ServerContext owns the Microsoft Graph client shared by all tool handlers.
// The client is created lazily from the environment configuration so the
// server starts even when no token has been acquired yet; operations degrade
// into structured failures that point the user at `graphmail auth`.
//
// HealthChecker serves Kubernetes-style liveness and readiness probes.
//
// HTTPServer wraps the MCP server with the streamable HTTP transport and
// mounts the health endpoints next to /mcp. Request metrics are recorded
// through the instrumentation package when a provider is configured.
//
// MetricsServer exposes Prometheus metrics on a dedicated port, isolated
// from the MCP traffic.
package server
