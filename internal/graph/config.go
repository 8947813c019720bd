package graph

import (
	"os"
	"path/filepath"
	"time"
)

// Defaults for the Graph connection. The token file lives next to the
// executable so the serve and auth processes agree on a location without
// extra configuration.
const (
	DefaultBaseURL        = "https://graph.microsoft.com/v1.0"
	DefaultScope          = "https://graph.microsoft.com/.default"
	DefaultTokenFileName  = "graph_api_token.json"
	DefaultPollInterval   = 2 * time.Second
	DefaultPollAttempts   = 30
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds the Microsoft Graph connection settings. Missing credentials
// never fail construction; operations degrade into structured failures that
// the diagnostic tools can explain.
type Config struct {
	// ClientID, ClientSecret and TenantID identify the Azure AD application.
	// They are consumed by the interactive auth command; the serving process
	// only reports their presence for diagnostics.
	ClientID     string
	ClientSecret string
	TenantID     string

	// Authority is the Microsoft identity platform authority URL.
	Authority string

	// Scope is the OAuth scope requested during authentication.
	Scope string

	// UserEmail selects mailbox addressing (users/{email}/...) when set.
	// When empty all resources are addressed through the delegated session
	// identity (me/...).
	UserEmail string

	// BaseURL is the Graph API root, without a trailing slash.
	BaseURL string

	// TokenFile is the path of the token record written by `graphmail auth`.
	TokenFile string

	// PollInterval and PollAttempts bound the wait for external
	// authentication when no token is available.
	PollInterval time.Duration
	PollAttempts int

	// RequestTimeout applies to each outbound HTTP request.
	RequestTimeout time.Duration
}

// ConfigFromEnv builds a Config from environment variables, falling back to
// defaults for everything optional.
func ConfigFromEnv() Config {
	cfg := Config{
		ClientID:       os.Getenv("GRAPH_CLIENT_ID"),
		ClientSecret:   os.Getenv("GRAPH_CLIENT_SECRET"),
		TenantID:       getEnvOrDefault("GRAPH_TENANT_ID", "common"),
		Scope:          getEnvOrDefault("GRAPH_SCOPE", DefaultScope),
		UserEmail:      os.Getenv("GRAPH_USER_EMAIL"),
		BaseURL:        getEnvOrDefault("GRAPH_BASE_URL", DefaultBaseURL),
		TokenFile:      getEnvOrDefault("GRAPH_TOKEN_FILE", DefaultTokenPath()),
		PollInterval:   DefaultPollInterval,
		PollAttempts:   DefaultPollAttempts,
		RequestTimeout: DefaultRequestTimeout,
	}
	cfg.Authority = getEnvOrDefault("AUTHORITY", "")
	return cfg
}

// AddressingMode derives the mailbox addressing mode from the configuration.
func (c Config) AddressingMode() AddressingMode {
	if c.UserEmail != "" {
		return MailboxMode(c.UserEmail)
	}
	return SessionMode()
}

// CredentialsConfigured reports whether the Azure AD application settings
// needed for interactive authentication are all present.
func (c Config) CredentialsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.TenantID != ""
}

// Diagnostics reports which settings are present without exposing values.
// Used by the test_connection and debug_system tools.
func (c Config) Diagnostics() map[string]any {
	userEmail := c.UserEmail
	if userEmail == "" {
		userEmail = "Not set"
	}
	scope := c.Scope
	if scope == "" {
		scope = "Not set"
	}
	return map[string]any{
		"client_id_present":     c.ClientID != "",
		"client_secret_present": c.ClientSecret != "",
		"tenant_id_present":     c.TenantID != "",
		"authority_present":     c.Authority != "",
		"scope":                 scope,
		"user_email":            userEmail,
		"token_file":            c.TokenFile,
	}
}

// DefaultTokenPath returns the token file location next to the executable.
// Falls back to the working directory when the executable path is unknown.
func DefaultTokenPath() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), DefaultTokenFileName)
	}
	return DefaultTokenFileName
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
