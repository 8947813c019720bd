package graph

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/graphmail/graphmail/internal/logging"
)

// TokenRecord mirrors the JSON document the `graphmail auth` command writes
// to disk. ExpiresAt is an absolute unix timestamp in seconds; fractional
// values are preserved.
type TokenRecord struct {
	AccessToken  string  `json:"access_token"`
	TokenType    string  `json:"token_type,omitempty"`
	Scope        string  `json:"scope,omitempty"`
	ExpiresIn    int     `json:"expires_in,omitempty"`
	RefreshToken string  `json:"refresh_token,omitempty"`
	ExpiresAt    float64 `json:"expires_at"`
}

// ValidAt reports whether the record carries a usable access token at t.
// A nil record, an empty token, a missing expiry, or an elapsed expiry all
// count as invalid.
func (r *TokenRecord) ValidAt(t time.Time) bool {
	if r == nil || r.AccessToken == "" || r.ExpiresAt == 0 {
		return false
	}
	return float64(t.Unix()) < r.ExpiresAt
}

// TokenStore persists token records. Load returns only records that are
// currently usable; anything unreadable, malformed, or expired yields
// (nil, false).
type TokenStore interface {
	Load() (*TokenRecord, bool)
	Save(record *TokenRecord) error
}

// FileStore reads and writes the token file. The serving process only ever
// loads; the interactive auth command is the single writer, and a full
// rewrite of the file is the only mutation (last write wins).
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a FileStore for the given path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultTokenPath()
	}
	return &FileStore{
		path:   path,
		logger: slog.Default(),
	}
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the token file and returns the record if it is present, well
// formed, and not expired. All failure modes degrade to (nil, false); the
// caller decides whether to wait for external authentication.
func (s *FileStore) Load() (*TokenRecord, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Debug("token file not readable",
			logging.Operation("token_load"),
			"path", s.path,
			logging.Err(err))
		return nil, false
	}

	var record TokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn("token file is not valid JSON",
			logging.Operation("token_load"),
			"path", s.path,
			logging.Err(err))
		return nil, false
	}

	if record.AccessToken == "" || record.ExpiresAt == 0 {
		s.logger.Warn("token file is missing access_token or expires_at",
			logging.Operation("token_load"),
			"path", s.path)
		return nil, false
	}

	if !record.ValidAt(time.Now()) {
		s.logger.Debug("token record is expired",
			logging.Operation("token_load"),
			"path", s.path)
		return nil, false
	}

	return &record, true
}

// Save truncates and rewrites the token file with the given record.
// The file is written with owner-only permissions.
func (s *FileStore) Save(record *TokenRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token record: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	s.logger.Info("token record saved",
		logging.Operation("token_save"),
		"path", s.path,
		"token", logging.SanitizeToken(record.AccessToken))
	return nil
}
