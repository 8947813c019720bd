// Package msauth implements the interactive delegated sign-in flow against
// the Microsoft identity platform. It is the single writer of the token file
// the serving process reads: the server never performs OAuth itself, it only
// waits for this flow to complete out of band.
package msauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"github.com/graphmail/graphmail/internal/graph"
	"github.com/graphmail/graphmail/internal/logging"
)

// Scopes are the delegated Graph permissions requested during sign-in.
var Scopes = []string{
	"Mail.Read",
	"Mail.ReadWrite",
	"Mail.Send",
	"MailboxSettings.Read",
	"MailboxSettings.ReadWrite",
	"User.Read",
}

const (
	// CallbackAddr is where the local callback server listens. The redirect
	// URI derived from it must be registered on the Azure AD application.
	CallbackAddr = "localhost:5000"

	// CallbackPath receives the authorization code.
	CallbackPath = "/auth/callback"

	// reuseBuffer is how close to expiry a cached token still counts as
	// valid for reuse, sparing a needless browser round trip.
	reuseBuffer = 5 * time.Minute
)

const successPage = `<html>
  <body>
    <h1>Authentication Successful</h1>
    <p>You can now close this window and return to your MCP client.</p>
    <script>setTimeout(function() { window.close(); }, 3000);</script>
  </body>
</html>`

// Flow drives one interactive authentication: it serves the local callback,
// exchanges the authorization code, and persists the token record.
type Flow struct {
	oauth  *oauth2.Config
	store  *graph.FileStore
	logger *slog.Logger
}

// New builds a Flow from the Graph configuration. The tenant selects the
// Azure AD authority; "common" allows any organizational or personal account.
func New(cfg graph.Config) (*Flow, error) {
	if !cfg.CredentialsConfigured() {
		return nil, errors.New("GRAPH_CLIENT_ID, GRAPH_CLIENT_SECRET and GRAPH_TENANT_ID must be set")
	}

	return &Flow{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     microsoft.AzureADEndpoint(cfg.TenantID),
			RedirectURL:  "http://" + CallbackAddr + CallbackPath,
			Scopes:       Scopes,
		},
		store:  graph.NewFileStore(cfg.TokenFile),
		logger: slog.Default(),
	}, nil
}

// TokenPath returns where the resulting token record is written.
func (f *Flow) TokenPath() string {
	return f.store.Path()
}

// CachedToken returns the stored record when it is still comfortably within
// its validity window, avoiding a new browser round trip.
func (f *Flow) CachedToken() (*graph.TokenRecord, bool) {
	record, ok := f.store.Load()
	if !ok {
		return nil, false
	}
	if !record.ValidAt(time.Now().Add(reuseBuffer)) {
		return nil, false
	}
	return record, true
}

// AuthURL returns the authorization URL the user must visit, bound to state.
func (f *Flow) AuthURL(state string) string {
	return f.oauth.AuthCodeURL(state)
}

// Run serves the local callback until one authorization code arrives, then
// exchanges it and saves the token record. The returned URL in err-free runs
// has already been printed by the caller; Run blocks until the exchange
// finishes or ctx is cancelled.
func (f *Flow) Run(ctx context.Context) (*graph.TokenRecord, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", CallbackAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", CallbackAddr, err)
	}

	type exchangeResult struct {
		record *graph.TokenRecord
		err    error
	}
	resultCh := make(chan exchangeResult, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, f.AuthURL(state), http.StatusFound)
	})
	mux.HandleFunc(CallbackPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Error: No authorization code received", http.StatusBadRequest)
			return
		}

		token, err := f.oauth.Exchange(r.Context(), code)
		if err != nil {
			http.Error(w, "token exchange failed: "+err.Error(), http.StatusBadRequest)
			resultCh <- exchangeResult{err: fmt.Errorf("token exchange failed: %w", err)}
			return
		}

		record := recordFromToken(token)
		if err := f.store.Save(record); err != nil {
			http.Error(w, "failed to save token: "+err.Error(), http.StatusInternalServerError)
			resultCh <- exchangeResult{err: err}
			return
		}

		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(successPage))
		resultCh <- exchangeResult{record: record}
	})

	server := &http.Server{Handler: mux}
	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	f.logger.Info("waiting for sign-in callback",
		logging.Operation("auth_flow"),
		"addr", CallbackAddr)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-serveErr:
		return nil, err
	case result := <-resultCh:
		return result.record, result.err
	}
}

// recordFromToken converts an exchanged oauth2 token into the persisted
// record shape the serving process reads.
func recordFromToken(token *oauth2.Token) *graph.TokenRecord {
	expiresIn := int(time.Until(token.Expiry).Seconds())
	if expiresIn <= 0 {
		expiresIn = 3600
	}

	record := &graph.TokenRecord{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		ExpiresIn:    expiresIn,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    float64(time.Now().Unix() + int64(expiresIn)),
	}
	if scope, ok := token.Extra("scope").(string); ok {
		record.Scope = scope
	}
	return record
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
