package graph

// AddressingMode selects how mailbox resources are addressed: through a
// configured mailbox (users/{id}/...) or through the delegated session
// identity (me/...). The zero value is session addressing. The set of modes
// is closed; there is no third way to address a mailbox.
type AddressingMode struct {
	mailbox string
}

// MailboxMode addresses resources through a specific mailbox.
func MailboxMode(id string) AddressingMode {
	return AddressingMode{mailbox: id}
}

// SessionMode addresses resources through the delegated session identity.
func SessionMode() AddressingMode {
	return AddressingMode{}
}

// IsMailbox reports whether a specific mailbox is configured.
func (m AddressingMode) IsMailbox() bool {
	return m.mailbox != ""
}

// Mailbox returns the configured mailbox id, empty in session mode.
func (m AddressingMode) Mailbox() string {
	return m.mailbox
}

func (m AddressingMode) root() string {
	if m.mailbox != "" {
		return "users/" + m.mailbox
	}
	return "me"
}

// Candidate is one endpoint a read may be attempted against during fallback.
type Candidate struct {
	Path        string
	Description string
}

// MessageListCandidates returns the ordered endpoints a message enumeration
// tries. Mailbox-addressed endpoints come first when a mailbox is
// configured; the session (/me) endpoints are the fallback of last resort.
// Writes never use this list: mutations resolve exactly one path.
func (m AddressingMode) MessageListCandidates() []Candidate {
	var candidates []Candidate
	if m.mailbox != "" {
		candidates = append(candidates,
			Candidate{
				Path:        "users/" + m.mailbox + "/messages",
				Description: "Specific user endpoint: " + m.mailbox,
			},
			Candidate{
				Path:        "users/" + m.mailbox + "/mailFolders/inbox/messages",
				Description: "User mailbox inbox folder: " + m.mailbox,
			},
		)
	}
	return append(candidates,
		Candidate{
			Path:        "me/messages",
			Description: "Standard /me/messages endpoint",
		},
		Candidate{
			Path:        "me/mailFolders/inbox/messages",
			Description: "Mailbox inbox folder",
		},
	)
}

// ProfilePath addresses the mailbox owner's profile.
func (m AddressingMode) ProfilePath() string {
	return m.root()
}

// MessagePath addresses a single message.
func (m AddressingMode) MessagePath(id string) string {
	return m.root() + "/messages/" + id
}

// AttachmentsPath addresses the attachment collection of a message.
func (m AddressingMode) AttachmentsPath(emailID string) string {
	return m.MessagePath(emailID) + "/attachments"
}

// AttachmentPath addresses a single attachment of a message.
func (m AddressingMode) AttachmentPath(emailID, attachmentID string) string {
	return m.AttachmentsPath(emailID) + "/" + attachmentID
}

// MoveMessagePath addresses the move action of a message.
func (m AddressingMode) MoveMessagePath(emailID string) string {
	return m.MessagePath(emailID) + "/move"
}

// SendMailPath addresses the sendMail action.
func (m AddressingMode) SendMailPath() string {
	return m.root() + "/sendMail"
}

// MailFoldersPath addresses the top-level mail folder collection.
func (m AddressingMode) MailFoldersPath() string {
	return m.root() + "/mailFolders"
}

// MailFolderPath addresses a single mail folder.
func (m AddressingMode) MailFolderPath(folderID string) string {
	return m.MailFoldersPath() + "/" + folderID
}

// ChildFoldersPath addresses the child collection of a mail folder.
func (m AddressingMode) ChildFoldersPath(parentID string) string {
	return m.MailFolderPath(parentID) + "/childFolders"
}

// MasterCategoriesPath addresses the mailbox category collection.
func (m AddressingMode) MasterCategoriesPath() string {
	return m.root() + "/outlook/masterCategories"
}

// MasterCategoryPath addresses a single mailbox category.
func (m AddressingMode) MasterCategoryPath(categoryID string) string {
	return m.MasterCategoriesPath() + "/" + categoryID
}

// MessageRulesPath addresses the inbox rule collection.
func (m AddressingMode) MessageRulesPath() string {
	return m.root() + "/mailFolders/inbox/messageRules"
}

// MessageRulePath addresses a single inbox rule.
func (m AddressingMode) MessageRulePath(ruleID string) string {
	return m.MessageRulesPath() + "/" + ruleID
}
