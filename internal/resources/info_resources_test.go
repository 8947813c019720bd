package resources

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/graph"
	"github.com/graphmail/graphmail/internal/server"
)

func newServerContext(t *testing.T, cfg graph.Config) *server.ServerContext {
	t.Helper()
	sc := server.NewServerContext(context.Background(), cfg)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestRegisterInfoResources(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithResourceCapabilities(false, false))
	sc := newServerContext(t, graph.Config{})

	if err := RegisterInfoResources(s, sc); err != nil {
		t.Fatalf("RegisterInfoResources() error = %v", err)
	}
}

func TestHandleEmailInfo(t *testing.T) {
	tests := []struct {
		name string
		cfg  graph.Config
		want string
	}{
		{
			name: "credentials configured",
			cfg: graph.Config{
				ClientID:     "id",
				ClientSecret: "secret",
				TenantID:     "tenant",
			},
			want: "Credentials are configured.",
		},
		{
			name: "credentials missing",
			cfg:  graph.Config{},
			want: "Credentials are missing.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newServerContext(t, tt.cfg)

			request := mcp.ReadResourceRequest{}
			request.Params.URI = "email://info"

			contents, err := handleEmailInfo(context.Background(), request, sc)
			if err != nil {
				t.Fatalf("handleEmailInfo() error = %v", err)
			}
			if len(contents) != 1 {
				t.Fatalf("expected 1 content entry, got %d", len(contents))
			}

			text, ok := contents[0].(*mcp.TextResourceContents)
			if !ok {
				t.Fatalf("expected text contents, got %T", contents[0])
			}
			if text.URI != "email://info" {
				t.Errorf("URI = %q, want email://info", text.URI)
			}
			if !strings.Contains(text.Text, tt.want) {
				t.Errorf("text = %q, want it to contain %q", text.Text, tt.want)
			}
		})
	}
}

func TestEmailHelpText(t *testing.T) {
	for _, tool := range []string{
		"list_emails", "send_email", "parse_pdf_attachment",
		"list_mail_folders", "assign_email_category",
		"create_email_rule", "archive_email", "test_api_permissions",
	} {
		if !strings.Contains(emailHelpText, tool) {
			t.Errorf("help prompt does not mention %s", tool)
		}
	}
}
