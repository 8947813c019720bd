package graph

import (
	"context"
	"net/http"
	"net/url"
)

// ListFolders returns the top-level mail folders with item counts.
func (c *Client) ListFolders(ctx context.Context) Outcome {
	query := url.Values{}
	query.Set("$select", "id,displayName,childFolderCount,totalItemCount")
	query.Set("$top", "100")
	outcome := c.exec.Execute(ctx, http.MethodGet, c.mode.MailFoldersPath(), query, nil)
	return collectionValue(outcome)
}

// CreateFolder creates a mail folder, nested under parentFolderID when set.
func (c *Client) CreateFolder(ctx context.Context, folderName, parentFolderID string) Outcome {
	endpoint := c.mode.MailFoldersPath()
	if parentFolderID != "" {
		endpoint = c.mode.ChildFoldersPath(parentFolderID)
	}
	return c.exec.Execute(ctx, http.MethodPost, endpoint, nil, map[string]any{
		"displayName": folderName,
	})
}

// MoveEmail moves a message into the destination folder.
func (c *Client) MoveEmail(ctx context.Context, emailID, destinationFolderID string) Outcome {
	return c.exec.Execute(ctx, http.MethodPost, c.mode.MoveMessagePath(emailID), nil, map[string]any{
		"destinationId": destinationFolderID,
	})
}

// DeleteFolder deletes a mail folder.
func (c *Client) DeleteFolder(ctx context.Context, folderID string) Outcome {
	outcome := c.exec.Execute(ctx, http.MethodDelete, c.mode.MailFolderPath(folderID), nil, nil)
	if !outcome.OK() {
		return outcome
	}
	return Success(map[string]any{"status": "success", "message": "Folder deleted successfully"})
}

// RenameFolder updates a mail folder's display name.
func (c *Client) RenameFolder(ctx context.Context, folderID, newName string) Outcome {
	return c.exec.Execute(ctx, http.MethodPatch, c.mode.MailFolderPath(folderID), nil, map[string]any{
		"displayName": newName,
	})
}
