package mail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/instrumentation"
	"github.com/graphmail/graphmail/internal/server"
	"github.com/graphmail/graphmail/internal/tools/common"
)

// RegisterCategoryTools registers Outlook category tools. Everything except
// list_email_categories mutates the mailbox and requires !readOnly.
func RegisterCategoryTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listCategoriesTool := mcp.NewTool("list_email_categories",
		mcp.WithDescription("List all master categories defined for the mailbox"),
	)

	s.AddTool(listCategoriesTool, common.InstrumentedToolHandlerWithService(
		"list_email_categories", instrumentation.ServiceCategories, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return common.OutcomeResult(sc.GraphClient().ListCategories(ctx))
		}))

	if readOnly {
		return nil
	}

	createCategoryTool := mcp.NewTool("create_email_category",
		mcp.WithDescription("Create a new master category"),
		mcp.WithString("display_name",
			mcp.Required(),
			mcp.Description("Display name for the category"),
		),
		mcp.WithString("color",
			mcp.Description("Preset color for the category, e.g. 'preset0' through 'preset24' (default: preset0)"),
		),
	)

	s.AddTool(createCategoryTool, common.InstrumentedToolHandlerWithService(
		"create_email_category", instrumentation.ServiceCategories, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateCategory(ctx, request, sc)
		}))

	deleteCategoryTool := mcp.NewTool("delete_email_category",
		mcp.WithDescription("Delete a master category"),
		mcp.WithString("category_id",
			mcp.Required(),
			mcp.Description("ID of the category to delete"),
		),
	)

	s.AddTool(deleteCategoryTool, common.InstrumentedToolHandlerWithService(
		"delete_email_category", instrumentation.ServiceCategories, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteCategory(ctx, request, sc)
		}))

	assignCategoryTool := mcp.NewTool("assign_email_category",
		mcp.WithDescription("Assign one or more categories to an email"),
		mcp.WithString("email_id",
			mcp.Required(),
			mcp.Description("ID of the email to categorize"),
		),
		mcp.WithString("category_names",
			mcp.Required(),
			mcp.Description("Category name(s) to assign: a comma-separated string or an array of names"),
		),
	)

	s.AddTool(assignCategoryTool, common.InstrumentedToolHandlerWithService(
		"assign_email_category", instrumentation.ServiceCategories, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAssignCategory(ctx, request, sc)
		}))

	removeCategoryTool := mcp.NewTool("remove_email_category",
		mcp.WithDescription("Remove a category from an email"),
		mcp.WithString("email_id",
			mcp.Required(),
			mcp.Description("ID of the email"),
		),
		mcp.WithString("category_name",
			mcp.Required(),
			mcp.Description("Name of the category to remove"),
		),
	)

	s.AddTool(removeCategoryTool, common.InstrumentedToolHandlerWithService(
		"remove_email_category", instrumentation.ServiceCategories, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRemoveCategory(ctx, request, sc)
		}))

	return nil
}

func handleCreateCategory(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	displayName, err := requiredString(args, "display_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	color := optionalString(args, "color", "preset0")

	outcome := sc.GraphClient().CreateCategory(ctx, displayName, color)
	return common.OutcomeResult(outcome)
}

func handleDeleteCategory(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	categoryID, err := requiredString(args, "category_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().DeleteCategory(ctx, categoryID)
	return common.OutcomeResult(outcome)
}

func handleAssignCategory(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	emailID, err := requiredString(args, "email_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	categoryNames, err := stringList(args["category_names"], "category_names")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().AssignCategories(ctx, emailID, categoryNames)
	return common.OutcomeResult(outcome)
}

func handleRemoveCategory(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	emailID, err := requiredString(args, "email_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	categoryName, err := requiredString(args, "category_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().RemoveCategory(ctx, emailID, categoryName)
	return common.OutcomeResult(outcome)
}
