package graph

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeTokenStore is a scriptable TokenStore that counts Load calls and can
// start returning a record after a given number of loads.
type fakeTokenStore struct {
	mu             sync.Mutex
	loads          int
	record         *TokenRecord
	availableAfter int
}

func (s *fakeTokenStore) Load() (*TokenRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.record != nil && s.loads > s.availableAfter {
		return s.record, true
	}
	return nil, false
}

func (s *fakeTokenStore) Save(record *TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = record
	return nil
}

func (s *fakeTokenStore) loadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func validRecord(token string) *TokenRecord {
	return &TokenRecord{
		AccessToken: token,
		ExpiresAt:   float64(time.Now().Add(time.Hour).Unix()),
	}
}

func TestAcquirerReturnsStoredToken(t *testing.T) {
	store := &fakeTokenStore{record: validRecord("stored-token")}
	acquirer := NewAcquirer(store, time.Millisecond, 3)

	token, err := acquirer.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored-token", token)
	assert.Equal(t, 1, store.loadCount())
}

func TestAcquirerCachesValidToken(t *testing.T) {
	store := &fakeTokenStore{record: validRecord("cached-token")}
	acquirer := NewAcquirer(store, time.Millisecond, 3)

	_, err := acquirer.Token(context.Background())
	require.NoError(t, err)

	// Second call must be served from the in-memory record.
	token, err := acquirer.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached-token", token)
	assert.Equal(t, 1, store.loadCount())
}

func TestAcquirerWaitsForExternalAuth(t *testing.T) {
	// The token appears on disk after two empty polls, as if the auth
	// command finished while we were waiting.
	store := &fakeTokenStore{
		record:         validRecord("late-token"),
		availableAfter: 3,
	}
	acquirer := NewAcquirer(store, time.Millisecond, 10)

	token, err := acquirer.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late-token", token)
}

func TestAcquirerGivesUpAfterPollBudget(t *testing.T) {
	store := &fakeTokenStore{}
	acquirer := NewAcquirer(store, time.Millisecond, 5)

	_, err := acquirer.Token(context.Background())
	require.ErrorIs(t, err, ErrTokenUnavailable)

	// One initial load plus one per poll attempt.
	assert.Equal(t, 6, store.loadCount())
}

func TestAcquirerRespectsContextCancellation(t *testing.T) {
	store := &fakeTokenStore{}
	acquirer := NewAcquirer(store, time.Hour, 30)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := acquirer.Token(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second, "cancellation must not wait out the poll interval")
}

func TestAcquirerDropsExpiredCache(t *testing.T) {
	store := &fakeTokenStore{}
	acquirer := NewAcquirer(store, time.Millisecond, 2)

	// Seed an already-expired cached record directly.
	acquirer.setCached(&TokenRecord{
		AccessToken: "stale",
		ExpiresAt:   float64(time.Now().Add(-time.Minute).Unix()),
	})

	_, err := acquirer.Token(context.Background())
	require.ErrorIs(t, err, ErrTokenUnavailable)
	assert.Greater(t, store.loadCount(), 0, "expired cache must fall through to the store")
}
