package mail_tools

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/graph"
	"github.com/graphmail/graphmail/internal/instrumentation"
	"github.com/graphmail/graphmail/internal/server"
	"github.com/graphmail/graphmail/internal/tools/common"
)

// registeredToolNames is the full tool surface, reported by debug_system so
// an agent can discover what is available without a tools/list round trip.
var registeredToolNames = []string{
	"list_emails",
	"get_email",
	"send_email",
	"archive_email",
	"get_attachments",
	"download_attachment",
	"parse_pdf_attachment",
	"list_mail_folders",
	"create_mail_folder",
	"move_email_to_folder",
	"delete_mail_folder",
	"rename_mail_folder",
	"list_email_categories",
	"create_email_category",
	"delete_email_category",
	"assign_email_category",
	"remove_email_category",
	"list_email_rules",
	"create_email_rule",
	"delete_email_rule",
	"update_email_rule",
	"test_connection",
	"debug_system",
	"test_api_permissions",
}

// RegisterDiagnosticTools registers the connectivity and permission probes.
// These never mutate anything, so they are available in read-only mode too.
func RegisterDiagnosticTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	testConnectionTool := mcp.NewTool("test_connection",
		mcp.WithDescription("Check that the server is running and report which credentials are configured"),
	)

	s.AddTool(testConnectionTool, common.InstrumentedToolHandlerWithService(
		"test_connection", instrumentation.ServiceDiagnostics, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleTestConnection(ctx, request, sc)
		}))

	debugSystemTool := mcp.NewTool("debug_system",
		mcp.WithDescription("Report runtime, environment and token state for troubleshooting"),
	)

	s.AddTool(debugSystemTool, common.InstrumentedToolHandlerWithService(
		"debug_system", instrumentation.ServiceDiagnostics, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDebugSystem(ctx, request, sc)
		}))

	testPermissionsTool := mcp.NewTool("test_api_permissions",
		mcp.WithDescription("Probe Graph API endpoints to report which delegated permissions are granted"),
	)

	s.AddTool(testPermissionsTool, common.InstrumentedToolHandlerWithService(
		"test_api_permissions", instrumentation.ServiceDiagnostics, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return common.OutcomeResult(sc.GraphClient().TestPermissions(ctx))
		}))

	return nil
}

func handleTestConnection(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	cfg := sc.GraphConfig()

	credentials := "missing"
	if cfg.CredentialsConfigured() {
		credentials = "present"
	}

	diag := cfg.Diagnostics()
	return common.JSONResult(map[string]any{
		"server":                "running",
		"credentials":           credentials,
		"client_id_present":     diag["client_id_present"],
		"client_secret_present": diag["client_secret_present"],
		"tenant_id_present":     diag["tenant_id_present"],
		"authority_present":     diag["authority_present"],
		"scope":                 diag["scope"],
		"user_email":            diag["user_email"],
	})
}

func handleDebugSystem(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	cfg := sc.GraphConfig()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	// Token inspection stays local; it must never trigger the poll loop.
	store := graph.NewFileStore(cfg.TokenFile)
	tokenTest := map[string]any{
		"token_file": store.Path(),
	}
	if _, statErr := os.Stat(store.Path()); statErr != nil {
		tokenTest["status"] = "failed"
		tokenTest["error"] = "token file not found"
	} else if _, ok := store.Load(); !ok {
		tokenTest["status"] = "failed"
		tokenTest["error"] = "token file present but expired or malformed"
	} else {
		tokenTest["status"] = "success"
	}

	return common.JSONResult(map[string]any{
		"system_info": map[string]any{
			"go_version": runtime.Version(),
			"platform":   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
			"hostname":   hostname,
		},
		"environment_variables": cfg.Diagnostics(),
		"token_test":            tokenTest,
		"tools_registered":      registeredToolNames,
	})
}
