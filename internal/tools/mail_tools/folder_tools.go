package mail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/instrumentation"
	"github.com/graphmail/graphmail/internal/server"
	"github.com/graphmail/graphmail/internal/tools/common"
)

// RegisterFolderTools registers mail folder tools. Everything except
// list_mail_folders mutates the mailbox and requires !readOnly.
func RegisterFolderTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listFoldersTool := mcp.NewTool("list_mail_folders",
		mcp.WithDescription("List all mail folders in the user's mailbox"),
	)

	s.AddTool(listFoldersTool, common.InstrumentedToolHandlerWithService(
		"list_mail_folders", instrumentation.ServiceFolders, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return common.OutcomeResult(sc.GraphClient().ListFolders(ctx))
		}))

	if readOnly {
		return nil
	}

	createFolderTool := mcp.NewTool("create_mail_folder",
		mcp.WithDescription("Create a new mail folder"),
		mcp.WithString("folder_name",
			mcp.Required(),
			mcp.Description("Name of the folder to create"),
		),
		mcp.WithString("parent_folder_id",
			mcp.Description("Optional ID of a parent folder to create this folder in"),
		),
	)

	s.AddTool(createFolderTool, common.InstrumentedToolHandlerWithService(
		"create_mail_folder", instrumentation.ServiceFolders, instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateFolder(ctx, request, sc)
		}))

	moveEmailTool := mcp.NewTool("move_email_to_folder",
		mcp.WithDescription("Move an email to a different folder"),
		mcp.WithString("email_id",
			mcp.Required(),
			mcp.Description("ID of the email to move"),
		),
		mcp.WithString("folder_id",
			mcp.Required(),
			mcp.Description("ID of the destination folder"),
		),
	)

	s.AddTool(moveEmailTool, common.InstrumentedToolHandlerWithService(
		"move_email_to_folder", instrumentation.ServiceFolders, instrumentation.OperationMove, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMoveEmail(ctx, request, sc)
		}))

	deleteFolderTool := mcp.NewTool("delete_mail_folder",
		mcp.WithDescription("Delete a mail folder"),
		mcp.WithString("folder_id",
			mcp.Required(),
			mcp.Description("ID of the folder to delete"),
		),
	)

	s.AddTool(deleteFolderTool, common.InstrumentedToolHandlerWithService(
		"delete_mail_folder", instrumentation.ServiceFolders, instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteFolder(ctx, request, sc)
		}))

	renameFolderTool := mcp.NewTool("rename_mail_folder",
		mcp.WithDescription("Rename a mail folder"),
		mcp.WithString("folder_id",
			mcp.Required(),
			mcp.Description("ID of the folder to rename"),
		),
		mcp.WithString("new_name",
			mcp.Required(),
			mcp.Description("New name for the folder"),
		),
	)

	s.AddTool(renameFolderTool, common.InstrumentedToolHandlerWithService(
		"rename_mail_folder", instrumentation.ServiceFolders, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRenameFolder(ctx, request, sc)
		}))

	return nil
}

func handleCreateFolder(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	folderName, err := requiredString(args, "folder_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	parentFolderID := optionalString(args, "parent_folder_id", "")

	outcome := sc.GraphClient().CreateFolder(ctx, folderName, parentFolderID)
	return common.OutcomeResult(outcome)
}

func handleMoveEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	emailID, err := requiredString(args, "email_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	folderID, err := requiredString(args, "folder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().MoveEmail(ctx, emailID, folderID)
	return common.OutcomeResult(outcome)
}

func handleDeleteFolder(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	folderID, err := requiredString(args, "folder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().DeleteFolder(ctx, folderID)
	return common.OutcomeResult(outcome)
}

func handleRenameFolder(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	folderID, err := requiredString(args, "folder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newName, err := requiredString(args, "new_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().RenameFolder(ctx, folderID, newName)
	return common.OutcomeResult(outcome)
}
