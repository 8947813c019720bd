package graph

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/graphmail/graphmail/internal/logging"
)

// ErrTokenUnavailable is returned when no usable token exists and the wait
// for external authentication ran out of attempts.
var ErrTokenUnavailable = errors.New("no valid access token available")

// Acquirer turns a TokenStore into bearer tokens. A valid in-memory record
// is reused without touching the store; otherwise the store is reloaded; if
// the store has nothing, the acquirer polls it on a fixed cadence waiting
// for the out-of-band auth command to write a token.
//
// Concurrent callers may wait independently; the store is the single source
// of truth and reads are idempotent.
type Acquirer struct {
	store        TokenStore
	pollInterval time.Duration
	pollAttempts int
	logger       *slog.Logger

	mu     sync.Mutex
	cached *TokenRecord
}

// NewAcquirer creates an Acquirer over the given store. Non-positive
// interval or attempts fall back to the defaults (2s cadence, 30 attempts).
func NewAcquirer(store TokenStore, pollInterval time.Duration, pollAttempts int) *Acquirer {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if pollAttempts <= 0 {
		pollAttempts = DefaultPollAttempts
	}
	return &Acquirer{
		store:        store,
		pollInterval: pollInterval,
		pollAttempts: pollAttempts,
		logger:       slog.Default(),
	}
}

// Token returns a bearer token, waiting for external authentication when
// necessary. The wait is aborted as soon as ctx is cancelled; exhausting the
// poll budget yields ErrTokenUnavailable.
func (a *Acquirer) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	if a.cached.ValidAt(time.Now()) {
		token := a.cached.AccessToken
		a.mu.Unlock()
		return token, nil
	}
	a.cached = nil
	a.mu.Unlock()

	if record, ok := a.store.Load(); ok {
		a.setCached(record)
		return record.AccessToken, nil
	}

	a.logger.Info("no usable token on disk, waiting for external authentication",
		logging.Operation("token_acquire"),
		"poll_interval", a.pollInterval,
		"poll_attempts", a.pollAttempts)

	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= a.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		if record, ok := a.store.Load(); ok {
			a.logger.Info("token appeared after external authentication",
				logging.Operation("token_acquire"),
				"attempt", attempt)
			a.setCached(record)
			return record.AccessToken, nil
		}
	}

	a.logger.Warn("gave up waiting for external authentication",
		logging.Operation("token_acquire"),
		"attempts", a.pollAttempts)
	return "", ErrTokenUnavailable
}

func (a *Acquirer) setCached(record *TokenRecord) {
	a.mu.Lock()
	a.cached = record
	a.mu.Unlock()
}
