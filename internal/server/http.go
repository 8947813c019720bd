package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/instrumentation"
)

const (
	// DefaultHTTPReadHeaderTimeout bounds how long reading request headers may take.
	DefaultHTTPReadHeaderTimeout = 10 * time.Second

	// DefaultHTTPIdleTimeout is the idle timeout for keep-alive connections.
	DefaultHTTPIdleTimeout = 120 * time.Second
)

// HTTPServerConfig holds configuration for the streamable HTTP transport.
type HTTPServerConfig struct {
	// DisableStreaming serves plain JSON responses instead of SSE streams,
	// for compatibility with clients that cannot consume streamed responses.
	DisableStreaming bool
}

// HTTPServer serves the MCP server over the streamable HTTP transport and
// mounts health check endpoints next to the /mcp endpoint.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	httpServer    *http.Server
	healthChecker *HealthChecker
	metrics       *instrumentation.Metrics
	config        HTTPServerConfig
}

// NewHTTPServer creates a new HTTP server wrapping the given MCP server.
func NewHTTPServer(mcpSrv *mcpserver.MCPServer, config HTTPServerConfig) *HTTPServer {
	return &HTTPServer{
		mcpServer: mcpSrv,
		config:    config,
	}
}

// SetHealthChecker sets the health checker whose endpoints are registered
// on the server mux. Must be called before Start.
func (s *HTTPServer) SetHealthChecker(hc *HealthChecker) {
	s.healthChecker = hc
}

// SetMetrics enables HTTP request metrics. Must be called before Start.
func (s *HTTPServer) SetMetrics(metrics *instrumentation.Metrics) {
	s.metrics = metrics
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrumentHandler wraps a handler to record request metrics under the
// given path label. The path is a static label, never the raw request URL,
// to keep metric cardinality bounded.
func (s *HTTPServer) instrumentHandler(path string, next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, path, recorder.status, time.Since(start))
	})
}

// Start starts the HTTP server on the given address. Blocks until the
// server stops.
func (s *HTTPServer) Start(addr string) error {
	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath("/mcp"),
	}
	if s.config.DisableStreaming {
		opts = append(opts, mcpserver.WithDisableStreaming(true))
	}
	streamableServer := mcpserver.NewStreamableHTTPServer(s.mcpServer, opts...)

	mux := http.NewServeMux()
	mux.Handle("/mcp", s.instrumentHandler("/mcp", streamableServer))

	if s.healthChecker != nil {
		s.healthChecker.RegisterHealthEndpoints(mux)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: DefaultHTTPReadHeaderTimeout,
		IdleTimeout:       DefaultHTTPIdleTimeout,
	}

	slog.Info("starting streamable HTTP server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.healthChecker != nil {
		// Fail readiness first so load balancers drain traffic
		s.healthChecker.SetReady(false)
	}
	if s.httpServer != nil {
		slog.Info("shutting down HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
