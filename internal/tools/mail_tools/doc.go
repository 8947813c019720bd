// Package mail_tools provides the MCP tool surface over the Microsoft Graph
// mailbox operations: email listing and retrieval, sending, attachments and
// PDF parsing, folder, category and rule management, and the diagnostic
// tools (test_connection, debug_system, test_api_permissions).
//
// Every handler returns the operation Outcome as a JSON tool result; failures
// become error tool results, never Go errors escaping to the dispatcher.
// Write operations are only registered when the server runs with write mode
// enabled.
package mail_tools
