package graph

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MaxAttachmentSize defines the maximum attachment size in bytes (25MB)
	MaxAttachmentSize = 25 * 1024 * 1024
)

// ListAttachments returns attachment metadata for a message.
func (c *Client) ListAttachments(ctx context.Context, emailID string) Outcome {
	query := url.Values{}
	query.Set("$select", "id,name,contentType,size")
	outcome := c.exec.Execute(ctx, http.MethodGet, c.mode.AttachmentsPath(emailID), query, nil)
	return collectionValue(outcome)
}

// DownloadAttachment fetches an attachment's content. When savePath is set
// the decoded bytes are written there (parent directories created) and the
// path is returned in the Outcome payload; otherwise the raw bytes are
// returned.
func (c *Client) DownloadAttachment(ctx context.Context, emailID, attachmentID, savePath string) Outcome {
	outcome := c.exec.Execute(ctx, http.MethodGet, c.mode.AttachmentPath(emailID, attachmentID), nil, nil)
	if !outcome.OK() {
		return outcome
	}

	data, err := decodeAttachmentContent(outcome.Payload)
	if err != nil {
		return Failure(err.Error())
	}

	if len(data) > MaxAttachmentSize {
		return Failure(fmt.Sprintf("attachment size %d exceeds maximum size %d", len(data), MaxAttachmentSize))
	}

	if savePath != "" {
		if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
			return Failure(fmt.Sprintf("failed to create directory for %s: %v", savePath, err))
		}
		if err := os.WriteFile(savePath, data, 0o644); err != nil {
			return Failure(fmt.Sprintf("failed to save attachment to %s: %v", savePath, err))
		}
		return Success(map[string]any{"status": "success", "saved_to": savePath})
	}

	return Success(data)
}

// decodeAttachmentContent extracts and base64-decodes the contentBytes field
// of an attachment payload.
func decodeAttachmentContent(payload any) ([]byte, error) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected attachment payload shape")
	}
	encoded, _ := m["contentBytes"].(string)
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attachment content: %w", err)
	}
	return data, nil
}

// SanitizeFilename sanitizes a filename to prevent path traversal attacks
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "..", "_")
	return filename
}
