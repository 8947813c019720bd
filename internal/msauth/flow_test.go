package msauth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphmail/graphmail/internal/graph"
)

func testConfig(t *testing.T) graph.Config {
	t.Helper()
	return graph.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TenantID:     "common",
		TokenFile:    filepath.Join(t.TempDir(), "graph_api_token.json"),
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(graph.Config{TenantID: "common"})
	require.Error(t, err)

	_, err = New(testConfig(t))
	require.NoError(t, err)
}

func TestAuthURLCarriesScopesAndRedirect(t *testing.T) {
	flow, err := New(testConfig(t))
	require.NoError(t, err)

	url := flow.AuthURL("state-123")
	assert.Contains(t, url, "login.microsoftonline.com")
	assert.Contains(t, url, "state=state-123")
	assert.Contains(t, url, "Mail.Read")
	assert.Contains(t, url, "localhost%3A5000%2Fauth%2Fcallback")
}

func TestCachedTokenHonorsReuseBuffer(t *testing.T) {
	cfg := testConfig(t)
	flow, err := New(cfg)
	require.NoError(t, err)

	store := graph.NewFileStore(cfg.TokenFile)

	// Expires in two minutes: valid for requests, too close for reuse.
	require.NoError(t, store.Save(&graph.TokenRecord{
		AccessToken: "soon-stale",
		ExpiresAt:   float64(time.Now().Add(2 * time.Minute).Unix()),
	}))
	_, ok := flow.CachedToken()
	assert.False(t, ok)

	require.NoError(t, store.Save(&graph.TokenRecord{
		AccessToken: "fresh",
		ExpiresAt:   float64(time.Now().Add(time.Hour).Unix()),
	}))
	record, ok := flow.CachedToken()
	require.True(t, ok)
	assert.Equal(t, "fresh", record.AccessToken)
}

func TestCachedTokenMissingFile(t *testing.T) {
	flow, err := New(testConfig(t))
	require.NoError(t, err)

	_, ok := flow.CachedToken()
	assert.False(t, ok)
}
