package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/graphmail/graphmail/internal/logging"
)

// AuthFailureMessage is the error surfaced when no bearer token could be
// acquired. No network I/O happens in that case.
const AuthFailureMessage = "No valid token available. Run 'graphmail auth' to authenticate."

// authRecommendedFix accompanies credential failures in tool results.
const authRecommendedFix = "Run 'graphmail auth' to complete the delegated sign-in flow"

// tokenProvider supplies bearer tokens for outbound requests.
type tokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Executor issues authenticated HTTP requests against the Graph API and
// classifies each result into an Outcome. Remote API errors (HTTP >= 400)
// and transport faults stay distinguishable; neither is ever swallowed into
// an empty success.
type Executor struct {
	baseURL string
	tokens  tokenProvider
	client  *http.Client
	logger  *slog.Logger
}

// NewExecutor creates an Executor rooted at baseURL. Each request gets a
// fresh *http.Request over a shared client with the given timeout.
func NewExecutor(baseURL string, tokens tokenProvider, timeout time.Duration) *Executor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Executor{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		client:  &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
}

// Execute runs a single authenticated request. body, when non-nil, is JSON
// encoded. The response body is decoded as JSON when possible; non-JSON
// success responses are wrapped as {"content": <raw>, "status": "success"}.
func (e *Executor) Execute(ctx context.Context, method, endpoint string, query url.Values, body any) Outcome {
	token, err := e.tokens.Token(ctx)
	if err != nil {
		if errors.Is(err, ErrTokenUnavailable) {
			return FailureWithFix(AuthFailureMessage, authRecommendedFix)
		}
		// Context cancellation while waiting for a token
		return TransportFailure(err)
	}

	reqURL := e.baseURL + "/" + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Failure(fmt.Sprintf("failed to encode request body: %v", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return Failure(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	e.logger.Debug("graph request",
		logging.Operation("graph_request"),
		"method", method,
		logging.Endpoint(endpoint),
		"token", logging.SanitizeToken(token))

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("graph request transport failure",
			logging.Operation("graph_request"),
			"method", method,
			logging.Endpoint(endpoint),
			logging.Err(err))
		return TransportFailure(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportFailure(err)
	}

	if resp.StatusCode >= 400 {
		e.logger.Warn("graph request rejected",
			logging.Operation("graph_request"),
			"method", method,
			logging.Endpoint(endpoint),
			"status_code", resp.StatusCode)
		return RemoteFailure(resp.StatusCode, string(data))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		// 202/204 style responses carry no body
		return Success(map[string]any{"content": "", "status": "success"})
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return Success(map[string]any{"content": string(data), "status": "success"})
	}
	return Success(payload)
}
