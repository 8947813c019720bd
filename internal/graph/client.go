package graph

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/graphmail/graphmail/internal/logging"
)

// requestExecutor abstracts the HTTP execution layer so mailbox operations
// can be exercised against a fake in tests.
type requestExecutor interface {
	Execute(ctx context.Context, method, endpoint string, query url.Values, body any) Outcome
}

// Client bundles the request executor with the mailbox addressing mode and
// exposes the mailbox operations behind the MCP tool surface. All operations
// return Outcomes; the zero-credential case degrades into structured
// failures rather than construction errors.
type Client struct {
	exec   requestExecutor
	mode   AddressingMode
	config Config
	logger *slog.Logger
}

// NewClient wires the full pipeline (file store, acquirer, executor) from
// the given configuration.
func NewClient(cfg Config) *Client {
	store := NewFileStore(cfg.TokenFile)
	acquirer := NewAcquirer(store, cfg.PollInterval, cfg.PollAttempts)
	exec := NewExecutor(cfg.BaseURL, acquirer, cfg.RequestTimeout)
	return &Client{
		exec:   exec,
		mode:   cfg.AddressingMode(),
		config: cfg,
		logger: slog.Default(),
	}
}

// newClientWithExecutor builds a Client over a caller-supplied executor.
// Used by tests to observe and script request traffic.
func newClientWithExecutor(exec requestExecutor, mode AddressingMode) *Client {
	return &Client{
		exec:   exec,
		mode:   mode,
		logger: slog.Default(),
	}
}

// Config returns the configuration the client was built from.
func (c *Client) Config() Config {
	return c.config
}

// Mode returns the mailbox addressing mode.
func (c *Client) Mode() AddressingMode {
	return c.mode
}

// executeWithFallback runs a GET against each candidate in order and returns
// the first success. When every candidate fails, the individual failures are
// aggregated into a single Outcome carrying failureMsg; no partial results
// leak out.
func (c *Client) executeWithFallback(ctx context.Context, candidates []Candidate, query url.Values, failureMsg string) Outcome {
	tried := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		c.logger.Debug("trying endpoint candidate",
			logging.Operation("endpoint_fallback"),
			logging.Endpoint(cand.Path),
			"description", cand.Description)

		outcome := c.exec.Execute(ctx, http.MethodGet, cand.Path, query, nil)
		if outcome.OK() {
			c.logger.Debug("endpoint candidate succeeded",
				logging.Operation("endpoint_fallback"),
				logging.Endpoint(cand.Path))
			return outcome
		}

		c.logger.Debug("endpoint candidate failed",
			logging.Operation("endpoint_fallback"),
			logging.Endpoint(cand.Path),
			"candidate_error", outcome.Err)
		tried = append(tried, cand.Description+": "+outcome.Err)
	}

	out := Failure(failureMsg)
	out.MethodsTried = tried
	return out
}

// collectionValue unwraps the "value" array of a Graph collection response.
// Failures pass through untouched; a success without a value array yields an
// empty list.
func collectionValue(o Outcome) Outcome {
	if !o.OK() {
		return o
	}
	if m, ok := o.Payload.(map[string]any); ok {
		if v, ok := m["value"]; ok {
			return Success(v)
		}
	}
	return Success([]any{})
}
