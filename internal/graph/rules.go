package graph

import (
	"context"
	"net/http"
)

// ListRules returns the inbox message rules.
func (c *Client) ListRules(ctx context.Context) Outcome {
	outcome := c.exec.Execute(ctx, http.MethodGet, c.mode.MessageRulesPath(), nil, nil)
	return collectionValue(outcome)
}

// CreateRule creates an inbox rule. conditions and actions follow the Graph
// messageRule schema; sequence, when non-nil, orders the rule relative to
// others (lower runs first).
func (c *Client) CreateRule(ctx context.Context, displayName string, conditions, actions map[string]any, sequence *int, isEnabled bool) Outcome {
	data := map[string]any{
		"displayName": displayName,
		"conditions":  conditions,
		"actions":     actions,
		"isEnabled":   isEnabled,
	}
	if sequence != nil {
		data["sequence"] = *sequence
	}
	return c.exec.Execute(ctx, http.MethodPost, c.mode.MessageRulesPath(), nil, data)
}

// DeleteRule removes an inbox rule.
func (c *Client) DeleteRule(ctx context.Context, ruleID string) Outcome {
	outcome := c.exec.Execute(ctx, http.MethodDelete, c.mode.MessageRulePath(ruleID), nil, nil)
	if !outcome.OK() {
		return outcome
	}
	return Success(map[string]any{"status": "success", "message": "Rule deleted successfully"})
}

// UpdateRule patches an inbox rule with the given properties.
func (c *Client) UpdateRule(ctx context.Context, ruleID string, updateData map[string]any) Outcome {
	return c.exec.Execute(ctx, http.MethodPatch, c.mode.MessageRulePath(ruleID), nil, updateData)
}
