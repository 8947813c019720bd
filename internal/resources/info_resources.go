package resources

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/server"
)

const emailHelpText = `You have access to the following email capabilities:

1. list_emails - Get a list of recent emails
2. get_email - Get details of a specific email
3. send_email - Send a new email
4. get_attachments - List attachments for an email
5. download_attachment - Download a specific attachment
6. parse_pdf_attachment - Extract text from a PDF attachment
7. test_connection - Test if the server is properly configured
8. debug_system - Get detailed diagnostics about the system
9. test_api_permissions - Test Microsoft Graph API permissions

Mail Folder Management:
10. list_mail_folders - List all available mail folders
11. create_mail_folder - Create a new mail folder
12. move_email_to_folder - Move an email to a different folder
13. delete_mail_folder - Delete a mail folder
14. rename_mail_folder - Rename a mail folder

Category Management:
15. list_email_categories - List all master categories
16. create_email_category - Create a new category
17. delete_email_category - Delete a category
18. assign_email_category - Assign categories to an email
19. remove_email_category - Remove a category from an email

Inbox Rules:
20. list_email_rules - List all inbox rules
21. create_email_rule - Create a new inbox rule
22. delete_email_rule - Delete an inbox rule
23. update_email_rule - Update an existing inbox rule

Other:
24. archive_email - Move an email to the Archive folder

If you encounter issues, try running test_connection, debug_system, or test_api_permissions first to diagnose the problem.

How can I help you with your emails today?`

// RegisterInfoResources registers the informational resource and the help
// prompt. Both are static descriptions; neither touches the Graph API.
func RegisterInfoResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	infoResource := mcp.NewResource(
		"email://info",
		"Email Server Info",
		mcp.WithResourceDescription("Information about the email functionality and credential state"),
		mcp.WithMIMEType("text/plain"),
	)

	s.AddResource(infoResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleEmailInfo(ctx, request, sc)
	})

	helpPrompt := mcp.NewPrompt(
		"email_help",
		mcp.WithPromptDescription("Overview of the available email tools and how to use them"),
	)

	s.AddPrompt(helpPrompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Messages: []mcp.PromptMessage{
				mcp.NewPromptMessage(
					mcp.RoleUser,
					mcp.NewTextContent(emailHelpText),
				),
			},
		}, nil
	})

	return nil
}

func handleEmailInfo(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	credentialsStatus := "missing"
	if sc.GraphConfig().CredentialsConfigured() {
		credentialsStatus = "configured"
	}

	text := fmt.Sprintf("This server provides access to email functionality through Microsoft Graph API. Credentials are %s.", credentialsStatus)

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}
