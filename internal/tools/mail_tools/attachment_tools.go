package mail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/instrumentation"
	"github.com/graphmail/graphmail/internal/pdf"
	"github.com/graphmail/graphmail/internal/server"
	"github.com/graphmail/graphmail/internal/tools/common"
)

// RegisterAttachmentTools registers attachment tools. These are all read
// operations; download_attachment writes to the local disk, not the mailbox,
// so saving to a path still requires write mode.
func RegisterAttachmentTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getAttachmentsTool := mcp.NewTool("get_attachments",
		mcp.WithDescription("Get all attachments from a specific email"),
		mcp.WithString("email_id",
			mcp.Required(),
			mcp.Description("The unique identifier of the email"),
		),
	)

	s.AddTool(getAttachmentsTool, common.InstrumentedToolHandlerWithService(
		"get_attachments", instrumentation.ServiceAttachments, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetAttachments(ctx, request, sc)
		}))

	downloadAttachmentTool := mcp.NewTool("download_attachment",
		mcp.WithDescription("Download a specific email attachment"),
		mcp.WithString("email_id",
			mcp.Required(),
			mcp.Description("The unique identifier of the email"),
		),
		mcp.WithString("attachment_id",
			mcp.Required(),
			mcp.Description("The unique identifier of the attachment"),
		),
		mcp.WithString("save_path",
			mcp.Description("Optional path to save the attachment to. Without it the attachment size is reported."),
		),
	)

	s.AddTool(downloadAttachmentTool, common.InstrumentedToolHandlerWithService(
		"download_attachment", instrumentation.ServiceAttachments, instrumentation.OperationDownload, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDownloadAttachment(ctx, request, sc, readOnly)
		}))

	parsePDFTool := mcp.NewTool("parse_pdf_attachment",
		mcp.WithDescription("Parse a PDF attachment from an email and extract its text"),
		mcp.WithString("email_id",
			mcp.Required(),
			mcp.Description("The unique identifier of the email"),
		),
		mcp.WithString("attachment_id",
			mcp.Required(),
			mcp.Description("The unique identifier of the attachment"),
		),
		mcp.WithBoolean("include_metadata",
			mcp.Description("Also extract document metadata (title, author, dates)"),
		),
	)

	s.AddTool(parsePDFTool, common.InstrumentedToolHandlerWithService(
		"parse_pdf_attachment", instrumentation.ServiceAttachments, instrumentation.OperationParse, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleParsePDFAttachment(ctx, request, sc)
		}))

	return nil
}

func handleGetAttachments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	emailID, err := requiredString(args, "email_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().ListAttachments(ctx, emailID)
	return common.OutcomeResult(outcome)
}

func handleDownloadAttachment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, readOnly bool) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	emailID, err := requiredString(args, "email_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	attachmentID, err := requiredString(args, "attachment_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	savePath := optionalString(args, "save_path", "")
	if savePath != "" && readOnly {
		return mcp.NewToolResultError("saving attachments to disk requires write mode (start the server with --yolo)"), nil
	}

	outcome := sc.GraphClient().DownloadAttachment(ctx, emailID, attachmentID, savePath)
	if !outcome.OK() {
		return common.OutcomeResult(outcome)
	}

	// Raw bytes are not useful to the agent; report the size instead.
	if data, ok := outcome.Payload.([]byte); ok {
		return common.JSONResult(map[string]any{
			"status": "success",
			"size":   len(data),
		})
	}
	return common.OutcomeResult(outcome)
}

func handleParsePDFAttachment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	emailID, err := requiredString(args, "email_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	attachmentID, err := requiredString(args, "attachment_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := sc.GraphClient().DownloadAttachment(ctx, emailID, attachmentID, "")
	if !outcome.OK() {
		return common.OutcomeResult(outcome)
	}

	data, ok := outcome.Payload.([]byte)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unexpected attachment payload type %T", outcome.Payload)), nil
	}

	result := pdf.ExtractText(data)
	if optionalBool(args, "include_metadata", false) {
		result["metadata"] = pdf.Metadata(data)
	}
	return common.JSONResult(result)
}
