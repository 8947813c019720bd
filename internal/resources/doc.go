// Package resources provides MCP resources and prompts that describe the
// mail server itself: the email://info resource reporting credential state,
// and the email_help prompt that orients an agent on the available tools.
package resources
