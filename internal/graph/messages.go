package graph

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/graphmail/graphmail/internal/logging"
)

const (
	// listSelectFields limits message listings to summary fields.
	listSelectFields = "id,subject,receivedDateTime,from,bodyPreview"

	// messageSelectFields covers the full detail view of a single message.
	messageSelectFields = "id,subject,receivedDateTime,from,toRecipients,ccRecipients,body,hasAttachments"
)

// ListEmails returns recent messages, newest first. filterQuery, when
// non-empty, is translated into an OData $filter (see TranslateFilter).
// The read walks the endpoint fallback chain; a mailbox-addressed endpoint
// wins over the session endpoints when both work.
func (c *Client) ListEmails(ctx context.Context, limit int, filterQuery string) Outcome {
	if limit <= 0 {
		limit = 10
	}

	query := url.Values{}
	query.Set("$top", strconv.Itoa(limit))
	query.Set("$orderby", "receivedDateTime DESC")
	query.Set("$select", listSelectFields)

	if filterQuery != "" {
		translated := TranslateFilter(filterQuery)
		query.Set("$filter", translated)
		c.logger.Debug("translated filter query",
			logging.Operation("list_emails"),
			"filter", translated)
	}

	outcome := c.executeWithFallback(ctx, c.mode.MessageListCandidates(), query,
		"All methods to list emails failed. Check API permissions and credentials.")
	return collectionValue(outcome)
}

// GetEmail returns the full detail view of a single message.
func (c *Client) GetEmail(ctx context.Context, emailID string) Outcome {
	query := url.Values{}
	query.Set("$select", messageSelectFields)
	return c.exec.Execute(ctx, http.MethodGet, c.mode.MessagePath(emailID), query, nil)
}

// SendAttachment is an outgoing attachment: either a file path to read from
// disk, or an inline name/content pair. Inline content may be raw text or
// already base64 encoded (PreEncoded selects which).
type SendAttachment struct {
	Path       string
	Name       string
	Content    string
	PreEncoded bool
}

// SendEmail sends an HTML message to the given recipients through the
// sendMail action. File attachments whose path does not exist are skipped
// with a warning; the send proceeds with whatever could be attached.
func (c *Client) SendEmail(ctx context.Context, recipients []string, subject, body string, attachments []SendAttachment) Outcome {
	toRecipients := make([]map[string]any, 0, len(recipients))
	for _, addr := range recipients {
		toRecipients = append(toRecipients, map[string]any{
			"emailAddress": map[string]any{"address": addr},
		})
	}

	message := map[string]any{
		"subject": subject,
		"body": map[string]any{
			"contentType": "HTML",
			"content":     body,
		},
		"toRecipients": toRecipients,
	}

	if encoded := c.encodeAttachments(attachments); len(encoded) > 0 {
		message["attachments"] = encoded
	}

	outcome := c.exec.Execute(ctx, http.MethodPost, c.mode.SendMailPath(), nil, map[string]any{
		"message": message,
	})
	if !outcome.OK() {
		return outcome
	}

	return Success(map[string]any{
		"status":     "sent",
		"recipients": recipients,
		"subject":    subject,
	})
}

// encodeAttachments turns SendAttachments into Graph fileAttachment items.
// A Path attachment that cannot be read is skipped, not fatal: the original
// caller may have listed optional files.
func (c *Client) encodeAttachments(attachments []SendAttachment) []map[string]any {
	items := make([]map[string]any, 0, len(attachments))
	for _, att := range attachments {
		switch {
		case att.Path != "":
			data, err := os.ReadFile(att.Path)
			if err != nil {
				c.logger.Warn("skipping unreadable attachment file",
					logging.Operation("send_email"),
					"path", att.Path,
					logging.Err(err))
				continue
			}
			items = append(items, map[string]any{
				"@odata.type":  "#microsoft.graph.fileAttachment",
				"name":         filepath.Base(att.Path),
				"contentBytes": base64.StdEncoding.EncodeToString(data),
			})

		case att.Name != "" && att.Content != "":
			content := att.Content
			if !att.PreEncoded {
				content = base64.StdEncoding.EncodeToString([]byte(att.Content))
			}
			items = append(items, map[string]any{
				"@odata.type":  "#microsoft.graph.fileAttachment",
				"name":         att.Name,
				"contentBytes": content,
			})
		}
	}
	return items
}

// ArchiveEmail moves a message into the "Archive" folder, creating the
// folder first when the mailbox does not have one.
func (c *Client) ArchiveEmail(ctx context.Context, emailID string) Outcome {
	folders := c.exec.Execute(ctx, http.MethodGet, c.mode.MailFoldersPath(), nil, nil)
	if !folders.OK() {
		return folders
	}

	archiveID := findFolderID(folders.Payload, "Archive")
	if archiveID == "" {
		created := c.exec.Execute(ctx, http.MethodPost, c.mode.MailFoldersPath(), nil, map[string]any{
			"displayName": "Archive",
		})
		if !created.OK() {
			return created
		}
		if m, ok := created.Payload.(map[string]any); ok {
			archiveID, _ = m["id"].(string)
		}
		if archiveID == "" {
			return Failure("archive folder was created but no folder id was returned")
		}
	}

	return c.MoveEmail(ctx, emailID, archiveID)
}

// findFolderID scans a mailFolders collection payload for a folder with the
// given display name and returns its id, or empty when absent.
func findFolderID(payload any, displayName string) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	values, ok := m["value"].([]any)
	if !ok {
		return ""
	}
	for _, v := range values {
		folder, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if folder["displayName"] == displayName {
			id, _ := folder["id"].(string)
			return id
		}
	}
	return ""
}
