package mail_tools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/graph"
	"github.com/graphmail/graphmail/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc := server.NewServerContext(context.Background(), graph.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TenantID:     "tenant-id",
		Scope:        graph.DefaultScope,
		UserEmail:    "user@example.com",
		TokenFile:    filepath.Join(t.TempDir(), "token.json"),
	})
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestRegisterMailTools(t *testing.T) {
	tests := []struct {
		name     string
		readOnly bool
	}{
		{name: "read-only mode", readOnly: true},
		{name: "write mode", readOnly: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithToolCapabilities(true))
			sc := newTestServerContext(t)

			if err := RegisterMailTools(s, sc, tt.readOnly); err != nil {
				t.Fatalf("RegisterMailTools() error = %v", err)
			}
		})
	}
}

func TestHandleGetEmail_MissingID(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleGetEmail(context.Background(), toolRequest("get_email", map[string]any{}), sc)
	if err != nil {
		t.Fatalf("handleGetEmail() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing email_id")
	}
}

func TestHandleSendEmail_ValidationErrors(t *testing.T) {
	sc := newTestServerContext(t)

	tests := []struct {
		name string
		args map[string]any
	}{
		{
			name: "missing recipients",
			args: map[string]any{"subject": "Hi", "body": "Hello"},
		},
		{
			name: "missing subject",
			args: map[string]any{"recipients": "a@example.com", "body": "Hello"},
		},
		{
			name: "missing body",
			args: map[string]any{"recipients": "a@example.com", "subject": "Hi"},
		},
		{
			name: "malformed attachments",
			args: map[string]any{
				"recipients":  "a@example.com",
				"subject":     "Hi",
				"body":        "Hello",
				"attachments": "not-an-array",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleSendEmail(context.Background(), toolRequest("send_email", tt.args), sc)
			if err != nil {
				t.Fatalf("handleSendEmail() error = %v", err)
			}
			if !result.IsError {
				t.Error("expected error result")
			}
		})
	}
}

func TestHandleDownloadAttachment_SavePathReadOnly(t *testing.T) {
	sc := newTestServerContext(t)

	args := map[string]any{
		"email_id":      "msg-1",
		"attachment_id": "att-1",
		"save_path":     "/tmp/out.pdf",
	}
	result, err := handleDownloadAttachment(context.Background(), toolRequest("download_attachment", args), sc, true)
	if err != nil {
		t.Fatalf("handleDownloadAttachment() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result when save_path is used in read-only mode")
	}
}

func TestHandleCreateRule_MissingConditions(t *testing.T) {
	sc := newTestServerContext(t)

	// Missing conditions must fail before any network access.
	args := map[string]any{
		"display_name": "Newsletters",
		"actions":      map[string]any{"moveToFolder": "folder-1"},
	}
	result, err := handleCreateRule(context.Background(), toolRequest("create_email_rule", args), sc)
	if err != nil {
		t.Fatalf("handleCreateRule() error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing conditions")
	}
}

func TestHandleTestConnection(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleTestConnection(context.Background(), toolRequest("test_connection", nil), sc)
	if err != nil {
		t.Fatalf("handleTestConnection() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload["server"] != "running" {
		t.Errorf("server = %v, want running", payload["server"])
	}
	if payload["credentials"] != "present" {
		t.Errorf("credentials = %v, want present", payload["credentials"])
	}
	if payload["user_email"] != "user@example.com" {
		t.Errorf("user_email = %v, want user@example.com", payload["user_email"])
	}
}

func TestHandleTestConnection_MissingCredentials(t *testing.T) {
	sc := server.NewServerContext(context.Background(), graph.Config{})
	t.Cleanup(func() { _ = sc.Shutdown() })

	result, err := handleTestConnection(context.Background(), toolRequest("test_connection", nil), sc)
	if err != nil {
		t.Fatalf("handleTestConnection() error = %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload["credentials"] != "missing" {
		t.Errorf("credentials = %v, want missing", payload["credentials"])
	}
	if payload["client_id_present"] != false {
		t.Errorf("client_id_present = %v, want false", payload["client_id_present"])
	}
}

func TestHandleDebugSystem(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleDebugSystem(context.Background(), toolRequest("debug_system", nil), sc)
	if err != nil {
		t.Fatalf("handleDebugSystem() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}

	systemInfo, ok := payload["system_info"].(map[string]any)
	if !ok {
		t.Fatal("expected system_info object")
	}
	if systemInfo["go_version"] == "" {
		t.Error("expected go_version to be set")
	}

	tokenTest, ok := payload["token_test"].(map[string]any)
	if !ok {
		t.Fatal("expected token_test object")
	}
	// No token file was written, so the probe must report failure.
	if tokenTest["status"] != "failed" {
		t.Errorf("token_test.status = %v, want failed", tokenTest["status"])
	}

	tools, ok := payload["tools_registered"].([]any)
	if !ok {
		t.Fatal("expected tools_registered array")
	}
	if len(tools) != len(registeredToolNames) {
		t.Errorf("tools_registered has %d entries, want %d", len(tools), len(registeredToolNames))
	}
}
