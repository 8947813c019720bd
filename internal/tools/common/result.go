package common

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/graphmail/graphmail/internal/graph"
)

// OutcomeResult converts a Graph operation Outcome into an MCP tool result.
// Successes carry the JSON-serialized payload; failures carry the structured
// error document and are flagged as error results. Failures never escape as
// Go errors to the dispatcher.
func OutcomeResult(outcome graph.Outcome) (*mcp.CallToolResult, error) {
	text, err := marshalPayload(outcome.ToolPayload())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result: %v", err)), nil
	}
	if !outcome.OK() {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

// JSONResult serializes an arbitrary payload as a successful tool result.
func JSONResult(payload any) (*mcp.CallToolResult, error) {
	text, err := marshalPayload(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func marshalPayload(payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
