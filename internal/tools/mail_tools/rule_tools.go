package mail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/instrumentation"
	"github.com/graphmail/graphmail/internal/server"
	"github.com/graphmail/graphmail/internal/tools/common"
)

// RegisterRuleTools registers inbox rule tools. Everything except
// list_email_rules mutates the mailbox and requires !readOnly.
func RegisterRuleTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listRulesTool := mcp.NewTool("list_email_rules",
		mcp.WithDescription("List all inbox rules for the mailbox"),
	)

	s.AddTool(listRulesTool, common.InstrumentedToolHandlerWithService(
		"list_email_rules", instrumentation.ServiceRules, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return common.OutcomeResult(sc.GraphClient().ListRules(ctx))
		}))

	if readOnly {
		return nil
	}

	createRuleTool := mcp.NewTool("create_email_rule",
		mcp.WithDescription("Create a new inbox rule"),
		mcp.WithString("display_name",
			mcp.Required(),
			mcp.Description("Display name for the rule"),
		),
		mcp.WithObject("conditions",
			mcp.Required(),
			mcp.Description("Rule conditions, e.g. {\"senderContains\": [\"newsletter\"]}"),
		),
		mcp.WithObject("actions",
			mcp.Required(),
			mcp.Description("Rule actions, e.g. {\"moveToFolder\": \"FOLDER_ID\"}"),
		),
		mcp.WithNumber("sequence",
			mcp.Description("Optional execution order relative to other rules"),
		),
		mcp.WithBoolean("is_enabled",
			mcp.Description("Whether the rule is active (default: true)"),
		),
	)

	s.AddTool(createRuleTool, common.InstrumentedToolHandlerWithService(
		"create_email_rule", instrumentation.ServiceRules, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateRule(ctx, request, sc)
		}))

	deleteRuleTool := mcp.NewTool("delete_email_rule",
		mcp.WithDescription("Delete an inbox rule"),
		mcp.WithString("rule_id",
			mcp.Required(),
			mcp.Description("ID of the rule to delete"),
		),
	)

	s.AddTool(deleteRuleTool, common.InstrumentedToolHandlerWithService(
		"delete_email_rule", instrumentation.ServiceRules, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteRule(ctx, request, sc)
		}))

	updateRuleTool := mcp.NewTool("update_email_rule",
		mcp.WithDescription("Update an existing inbox rule"),
		mcp.WithString("rule_id",
			mcp.Required(),
			mcp.Description("ID of the rule to update"),
		),
		mcp.WithObject("update_data",
			mcp.Required(),
			mcp.Description("Fields to update, e.g. {\"isEnabled\": false}"),
		),
	)

	s.AddTool(updateRuleTool, common.InstrumentedToolHandlerWithService(
		"update_email_rule", instrumentation.ServiceRules, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateRule(ctx, request, sc)
		}))

	return nil
}

func handleCreateRule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	displayName, err := requiredString(args, "display_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conditions, err := objectArg(args, "conditions")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	actions, err := objectArg(args, "actions")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sequence *int
	if value, ok := args["sequence"].(float64); ok {
		seq := int(value)
		sequence = &seq
	}
	isEnabled := optionalBool(args, "is_enabled", true)

	outcome := sc.GraphClient().CreateRule(ctx, displayName, conditions, actions, sequence, isEnabled)
	return common.OutcomeResult(outcome)
}

func handleDeleteRule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	ruleID, err := requiredString(args, "rule_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().DeleteRule(ctx, ruleID)
	return common.OutcomeResult(outcome)
}

func handleUpdateRule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	ruleID, err := requiredString(args, "rule_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	updateData, err := objectArg(args, "update_data")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().UpdateRule(ctx, ruleID, updateData)
	return common.OutcomeResult(outcome)
}
