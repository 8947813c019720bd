package graph

import (
	"context"
	"net/http"
	"net/url"
	"os"

	"github.com/graphmail/graphmail/internal/logging"
)

// permissionProbe is one endpoint the permission test exercises, paired with
// the delegated permission that unlocks it.
type permissionProbe struct {
	Endpoint           string
	Query              url.Values
	Description        string
	RequiredFor        string
	RequiredPermission string
}

func topOne() url.Values {
	q := url.Values{}
	q.Set("$top", "1")
	return q
}

// permissionProbes returns the endpoints to exercise. The session (/me)
// probes always run; mailbox-addressed probes are added when a mailbox is
// configured since those need the broader .All permissions.
func (c *Client) permissionProbes() []permissionProbe {
	probes := []permissionProbe{
		{
			Endpoint:           "me",
			Description:        "Current user profile access",
			RequiredFor:        "basic user information",
			RequiredPermission: "User.Read",
		},
		{
			Endpoint:           "me/messages",
			Query:              topOne(),
			Description:        "Current user messages access",
			RequiredFor:        "reading emails",
			RequiredPermission: "Mail.Read",
		},
		{
			Endpoint:           "me/mailFolders/inbox/messages",
			Query:              topOne(),
			Description:        "Current user mailbox folders access",
			RequiredFor:        "accessing mail folders",
			RequiredPermission: "Mail.ReadBasic",
		},
	}

	if c.mode.IsMailbox() {
		mailbox := c.mode.Mailbox()
		probes = append(probes,
			permissionProbe{
				Endpoint:           "users/" + mailbox,
				Description:        "Specific user profile access",
				RequiredFor:        "basic user information",
				RequiredPermission: "User.Read.All",
			},
			permissionProbe{
				Endpoint:           "users/" + mailbox + "/messages",
				Query:              topOne(),
				Description:        "Specific user messages access",
				RequiredFor:        "reading specific user emails",
				RequiredPermission: "Mail.Read.All",
			},
			permissionProbe{
				Endpoint:           "users/" + mailbox + "/mailFolders/inbox/messages",
				Query:              topOne(),
				Description:        "Specific user mailbox folders access",
				RequiredFor:        "accessing specific user mail folders",
				RequiredPermission: "Mail.ReadBasic.All",
			},
		)
	}

	return probes
}

// TestPermissions exercises a matrix of Graph endpoints and reports which
// delegated permissions are actually granted. The report always succeeds as
// an Outcome; failures are recorded inside the payload so an agent can read
// them.
func (c *Client) TestPermissions(ctx context.Context) Outcome {
	report := map[string]any{
		"token_acquisition":   "not_tested",
		"permissions_tested":  []any{},
		"available_endpoints": []string{},
		"auth_type":           "delegated",
	}

	store := NewFileStore(c.config.TokenFile)
	if _, err := os.Stat(store.Path()); err != nil {
		report["token_acquisition"] = "failed: Token file not found"
		report["recommended_fix"] = "Run 'graphmail auth' to authenticate using OAuth"
		return Success(report)
	}
	if _, ok := store.Load(); !ok {
		report["token_acquisition"] = "failed: Token is expired"
		report["recommended_fix"] = "Run 'graphmail auth' to get a new token"
		return Success(report)
	}
	report["token_acquisition"] = "success"

	if c.mode.IsMailbox() {
		report["user_email"] = c.mode.Mailbox()
	} else {
		report["user_email"] = "not set (but not required for /me endpoints)"
	}

	tested := make([]any, 0)
	available := make([]string, 0)
	successCount := 0

	for _, probe := range c.permissionProbes() {
		outcome := c.exec.Execute(ctx, http.MethodGet, probe.Endpoint, probe.Query, nil)

		result := map[string]any{
			"endpoint":            probe.Endpoint,
			"description":         probe.Description,
			"required_for":        probe.RequiredFor,
			"required_permission": probe.RequiredPermission,
		}
		if outcome.OK() {
			result["status"] = "success"
			available = append(available, probe.Endpoint)
			successCount++
		} else {
			result["status"] = "failed"
			result["error"] = outcome.Err
			c.logger.Debug("permission probe denied",
				logging.Operation("test_permissions"),
				logging.Endpoint(probe.Endpoint),
				"error", outcome.Err)
		}
		tested = append(tested, result)
	}

	report["permissions_tested"] = tested
	report["available_endpoints"] = available

	switch {
	case successCount == 0:
		report["overall_status"] = "failed"
		report["recommended_fix"] = "1. Run 'graphmail auth' to authenticate with all required permissions\n" +
			"2. Ensure you've consented to all required permissions during the OAuth flow\n" +
			"3. Check that your Azure AD app is configured with the proper redirect URI"
	case successCount == len(tested):
		report["overall_status"] = "success"
	default:
		report["overall_status"] = "partial"
		report["recommended_fix"] = "Some permissions are working, but not all. You can:\n" +
			"1. Use only the endpoints that work (/me endpoints)\n" +
			"2. Run 'graphmail auth' again and ensure you consent to all permissions"
	}

	return Success(report)
}
