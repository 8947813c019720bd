package graph

import (
	"context"
	"net/http"
	"net/url"
)

// ListCategories returns the mailbox's master category list.
func (c *Client) ListCategories(ctx context.Context) Outcome {
	outcome := c.exec.Execute(ctx, http.MethodGet, c.mode.MasterCategoriesPath(), nil, nil)
	return collectionValue(outcome)
}

// CreateCategory creates a master category. Valid colors are "none" and
// "preset0" through "preset24"; an empty color defaults to preset0.
func (c *Client) CreateCategory(ctx context.Context, displayName, color string) Outcome {
	if color == "" {
		color = "preset0"
	}
	return c.exec.Execute(ctx, http.MethodPost, c.mode.MasterCategoriesPath(), nil, map[string]any{
		"displayName": displayName,
		"color":       color,
	})
}

// DeleteCategory removes a master category.
func (c *Client) DeleteCategory(ctx context.Context, categoryID string) Outcome {
	outcome := c.exec.Execute(ctx, http.MethodDelete, c.mode.MasterCategoryPath(categoryID), nil, nil)
	if !outcome.OK() {
		return outcome
	}
	return Success(map[string]any{"status": "success", "message": "Category deleted successfully"})
}

// AssignCategories replaces a message's category list with categoryNames.
func (c *Client) AssignCategories(ctx context.Context, emailID string, categoryNames []string) Outcome {
	return c.exec.Execute(ctx, http.MethodPatch, c.mode.MessagePath(emailID), nil, map[string]any{
		"categories": categoryNames,
	})
}

// RemoveCategory removes a single category from a message, preserving any
// other categories it carries. Reads the current list first so concurrent
// assignments elsewhere are not clobbered more than necessary.
func (c *Client) RemoveCategory(ctx context.Context, emailID, categoryName string) Outcome {
	query := url.Values{}
	query.Set("$select", "id,categories")
	current := c.exec.Execute(ctx, http.MethodGet, c.mode.MessagePath(emailID), query, nil)
	if !current.OK() {
		return current
	}

	var remaining []string
	if m, ok := current.Payload.(map[string]any); ok {
		if categories, ok := m["categories"].([]any); ok {
			for _, cat := range categories {
				if name, ok := cat.(string); ok && name != categoryName {
					remaining = append(remaining, name)
				}
			}
		}
	}
	if remaining == nil {
		remaining = []string{}
	}

	return c.exec.Execute(ctx, http.MethodPatch, c.mode.MessagePath(emailID), nil, map[string]any{
		"categories": remaining,
	})
}
