package server

import (
	"context"
	"sync"

	"github.com/graphmail/graphmail/internal/graph"
	"github.com/graphmail/graphmail/internal/instrumentation"
)

// ServerContext holds the shared state for the MCP server.
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	graphConfig graph.Config
	graphClient *graph.Client
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a new server context from the given Graph
// configuration. The Graph client is not created here; it is lazily built on
// first use so a missing token never prevents startup.
func NewServerContext(ctx context.Context, cfg graph.Config) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:         shutdownCtx,
		cancel:      cancel,
		graphConfig: cfg,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// GraphConfig returns the Graph configuration the context was built from.
func (sc *ServerContext) GraphConfig() graph.Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.graphConfig
}

// GraphClient returns the shared Graph client, creating and caching it on
// first use. Construction never fails; a client without a valid token
// returns structured failures from its operations.
func (sc *ServerContext) GraphClient() *graph.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.graphClient == nil {
		sc.graphClient = graph.NewClient(sc.graphConfig)
	}
	return sc.graphClient
}

// SetGraphClient sets the Graph client. Used by tests to inject fakes.
func (sc *ServerContext) SetGraphClient(client *graph.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.graphClient = client
}

// SetMetrics sets the metrics recorder used by instrumented tool handlers.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil when instrumentation is not
// configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger used by instrumented tool handlers.
func (sc *ServerContext) SetAuditLogger(logger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = logger
}

// AuditLogger returns the audit logger, or nil when not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
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
