package mail_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/graphmail/graphmail/internal/server"
)

// RegisterMailTools registers all mail-related tools with the MCP server.
// Write operations are only registered when readOnly is false.
func RegisterMailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "email tools",
			register: func() error {
				return RegisterEmailTools(s, sc, readOnly)
			},
		},
		{
			name: "attachment tools",
			register: func() error {
				return RegisterAttachmentTools(s, sc, readOnly)
			},
		},
		{
			name: "folder tools",
			register: func() error {
				return RegisterFolderTools(s, sc, readOnly)
			},
		},
		{
			name: "category tools",
			register: func() error {
				return RegisterCategoryTools(s, sc, readOnly)
			},
		},
		{
			name: "rule tools",
			register: func() error {
				return RegisterRuleTools(s, sc, readOnly)
			},
		},
		{
			name: "diagnostic tools",
			register: func() error {
				return RegisterDiagnosticTools(s, sc)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}
