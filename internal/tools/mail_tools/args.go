package mail_tools

import (
	"fmt"
	"strings"

	"github.com/graphmail/graphmail/internal/graph"
)

// requiredString extracts a non-empty string argument.
func requiredString(args map[string]any, name string) (string, error) {
	value, ok := args[name].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("'%s' field is required", name)
	}
	return value, nil
}

// optionalString extracts a string argument, returning fallback when absent.
func optionalString(args map[string]any, name, fallback string) string {
	if value, ok := args[name].(string); ok && value != "" {
		return value
	}
	return fallback
}

// optionalInt extracts a numeric argument. JSON numbers decode as float64.
func optionalInt(args map[string]any, name string, fallback int) int {
	if value, ok := args[name].(float64); ok {
		return int(value)
	}
	return fallback
}

// optionalBool extracts a boolean argument, returning fallback when absent.
func optionalBool(args map[string]any, name string, fallback bool) bool {
	if value, ok := args[name].(bool); ok {
		return value
	}
	return fallback
}

// stringList parses a parameter that can be a single string (optionally
// comma-separated) or an array of strings.
func stringList(param any, name string) ([]string, error) {
	switch v := param.(type) {
	case nil:
		return nil, fmt.Errorf("'%s' field is required", name)
	case string:
		if v == "" {
			return nil, fmt.Errorf("'%s' cannot be empty", name)
		}
		var result []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
		if len(result) == 0 {
			return nil, fmt.Errorf("'%s' cannot be empty", name)
		}
		return result, nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("'%s' cannot be empty", name)
		}
		result := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("'%s[%d]' must be a non-empty string", name, i)
			}
			result = append(result, s)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("'%s' must be a string or array of strings", name)
	}
}

// objectArg extracts a JSON-object argument.
func objectArg(args map[string]any, name string) (map[string]any, error) {
	value, ok := args[name].(map[string]any)
	if !ok || len(value) == 0 {
		return nil, fmt.Errorf("'%s' field is required and must be an object", name)
	}
	return value, nil
}

// parseAttachments turns the attachments argument into SendAttachments.
// Each entry is either a file path (string) or an inline object
// {"name": ..., "content": ..., "pre_encoded": bool}.
func parseAttachments(param any) ([]graph.SendAttachment, error) {
	if param == nil {
		return nil, nil
	}
	items, ok := param.([]any)
	if !ok {
		return nil, fmt.Errorf("'attachments' must be an array")
	}

	attachments := make([]graph.SendAttachment, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			if v == "" {
				return nil, fmt.Errorf("'attachments[%d]' cannot be an empty path", i)
			}
			attachments = append(attachments, graph.SendAttachment{Path: v})
		case map[string]any:
			name, _ := v["name"].(string)
			content, _ := v["content"].(string)
			if name == "" || content == "" {
				return nil, fmt.Errorf("'attachments[%d]' needs both 'name' and 'content'", i)
			}
			preEncoded, _ := v["pre_encoded"].(bool)
			attachments = append(attachments, graph.SendAttachment{
				Name:       name,
				Content:    content,
				PreEncoded: preEncoded,
			})
		default:
			return nil, fmt.Errorf("'attachments[%d]' must be a path string or a name/content object", i)
		}
	}
	return attachments, nil
}
