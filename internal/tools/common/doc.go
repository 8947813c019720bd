// Package common provides shared utilities for MCP tool implementations.
// It contains the instrumented handler wrapper and the Outcome-to-tool-result
// bridge used across all tool packages to ensure consistent behavior.
package common
