package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageListCandidatesSessionMode(t *testing.T) {
	candidates := SessionMode().MessageListCandidates()
	require.Len(t, candidates, 2)

	assert.Equal(t, "me/messages", candidates[0].Path)
	assert.Equal(t, "Standard /me/messages endpoint", candidates[0].Description)
	assert.Equal(t, "me/mailFolders/inbox/messages", candidates[1].Path)
	assert.Equal(t, "Mailbox inbox folder", candidates[1].Description)
}

func TestMessageListCandidatesMailboxMode(t *testing.T) {
	candidates := MailboxMode("user@example.com").MessageListCandidates()
	require.Len(t, candidates, 4)

	// Mailbox-addressed endpoints come first, session endpoints last.
	assert.Equal(t, "users/user@example.com/messages", candidates[0].Path)
	assert.Equal(t, "Specific user endpoint: user@example.com", candidates[0].Description)
	assert.Equal(t, "users/user@example.com/mailFolders/inbox/messages", candidates[1].Path)
	assert.Equal(t, "User mailbox inbox folder: user@example.com", candidates[1].Description)
	assert.Equal(t, "me/messages", candidates[2].Path)
	assert.Equal(t, "me/mailFolders/inbox/messages", candidates[3].Path)
}

func TestAddressingModePaths(t *testing.T) {
	session := SessionMode()
	mailbox := MailboxMode("user@example.com")

	tests := []struct {
		name        string
		sessionPath string
		mailboxPath string
	}{
		{"profile", session.ProfilePath(), mailbox.ProfilePath()},
		{"message", session.MessagePath("m1"), mailbox.MessagePath("m1")},
		{"attachments", session.AttachmentsPath("m1"), mailbox.AttachmentsPath("m1")},
		{"attachment", session.AttachmentPath("m1", "a1"), mailbox.AttachmentPath("m1", "a1")},
		{"move", session.MoveMessagePath("m1"), mailbox.MoveMessagePath("m1")},
		{"sendMail", session.SendMailPath(), mailbox.SendMailPath()},
		{"mailFolders", session.MailFoldersPath(), mailbox.MailFoldersPath()},
		{"mailFolder", session.MailFolderPath("f1"), mailbox.MailFolderPath("f1")},
		{"childFolders", session.ChildFoldersPath("f1"), mailbox.ChildFoldersPath("f1")},
		{"categories", session.MasterCategoriesPath(), mailbox.MasterCategoriesPath()},
		{"category", session.MasterCategoryPath("c1"), mailbox.MasterCategoryPath("c1")},
		{"rules", session.MessageRulesPath(), mailbox.MessageRulesPath()},
		{"rule", session.MessageRulePath("r1"), mailbox.MessageRulePath("r1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "me", tt.sessionPath[:2], "session paths address /me")
			assert.Equal(t, "users/user@example.com", tt.mailboxPath[:22], "mailbox paths address users/{id}")
		})
	}

	assert.Equal(t, "me/messages/m1/move", session.MoveMessagePath("m1"))
	assert.Equal(t, "users/user@example.com/outlook/masterCategories", mailbox.MasterCategoriesPath())
	assert.Equal(t, "me/mailFolders/inbox/messageRules/r1", session.MessageRulePath("r1"))
	assert.Equal(t, "me/mailFolders/f1/childFolders", session.ChildFoldersPath("f1"))
}

func TestAddressingModeZeroValueIsSession(t *testing.T) {
	var mode AddressingMode
	assert.False(t, mode.IsMailbox())
	assert.Equal(t, "me", mode.ProfilePath())
}
