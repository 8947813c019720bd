package mail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/instrumentation"
	"github.com/graphmail/graphmail/internal/server"
	"github.com/graphmail/graphmail/internal/tools/common"
)

// RegisterEmailTools registers the core email tools. send_email and
// archive_email are write operations and require !readOnly.
func RegisterEmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listEmailsTool := mcp.NewTool("list_emails",
		mcp.WithDescription("List recent emails from the inbox"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of emails to retrieve (default: 10)"),
		),
		mcp.WithString("filter_query",
			mcp.Description("Optional filter query. Supports 'subject:contains \"X\"', 'received:gt DATE', AND/OR combinations, or raw OData filters."),
		),
	)

	s.AddTool(listEmailsTool, common.InstrumentedToolHandlerWithService(
		"list_emails", instrumentation.ServiceMail, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEmails(ctx, request, sc)
		}))

	getEmailTool := mcp.NewTool("get_email",
		mcp.WithDescription("Retrieve a specific email by ID with full details"),
		mcp.WithString("email_id",
			mcp.Required(),
			mcp.Description("The unique identifier of the email"),
		),
	)

	s.AddTool(getEmailTool, common.InstrumentedToolHandlerWithService(
		"get_email", instrumentation.ServiceMail, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEmail(ctx, request, sc)
		}))

	if !readOnly {
		sendEmailTool := mcp.NewTool("send_email",
			mcp.WithDescription("Send a new email. The body is sent as HTML."),
			mcp.WithString("recipients",
				mcp.Required(),
				mcp.Description("Recipient email address(es): a comma-separated string or an array of addresses"),
			),
			mcp.WithString("subject",
				mcp.Required(),
				mcp.Description("Email subject line"),
			),
			mcp.WithString("body",
				mcp.Required(),
				mcp.Description("Email body content (HTML supported)"),
			),
			mcp.WithArray("attachments",
				mcp.Description("Optional attachments: file paths or {name, content, pre_encoded} objects"),
			),
		)

		s.AddTool(sendEmailTool, common.InstrumentedToolHandlerWithService(
			"send_email", instrumentation.ServiceMail, instrumentation.OperationSend, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleSendEmail(ctx, request, sc)
			}))

		archiveEmailTool := mcp.NewTool("archive_email",
			mcp.WithDescription("Archive an email by moving it to the Archive folder"),
			mcp.WithString("email_id",
				mcp.Required(),
				mcp.Description("ID of the email to archive"),
			),
		)

		s.AddTool(archiveEmailTool, common.InstrumentedToolHandlerWithService(
			"archive_email", instrumentation.ServiceMail, instrumentation.OperationMove, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleArchiveEmail(ctx, request, sc)
			}))
	}

	return nil
}

func handleListEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	limit := optionalInt(args, "limit", 10)
	filterQuery := optionalString(args, "filter_query", "")

	outcome := sc.GraphClient().ListEmails(ctx, limit, filterQuery)
	return common.OutcomeResult(outcome)
}

func handleGetEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	emailID, err := requiredString(args, "email_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().GetEmail(ctx, emailID)
	return common.OutcomeResult(outcome)
}

func handleSendEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	recipients, err := stringList(args["recipients"], "recipients")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	subject, err := requiredString(args, "subject")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body, err := requiredString(args, "body")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	attachments, err := parseAttachments(args["attachments"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().SendEmail(ctx, recipients, subject, body, attachments)
	return common.OutcomeResult(outcome)
}

func handleArchiveEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	emailID, err := requiredString(args, "email_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().ArchiveEmail(ctx, emailID)
	return common.OutcomeResult(outcome)
}
