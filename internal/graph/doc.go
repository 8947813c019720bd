// Package graph implements the Microsoft Graph mail client used by the MCP
// tool surface.
//
// The package is organized around a small credential and request pipeline:
//
//   - FileStore loads and saves the token record that the out-of-band
//     `graphmail auth` command writes to disk.
//   - Acquirer turns the store into bearer tokens, waiting for external
//     authentication to complete when no usable record exists yet.
//   - Executor issues authenticated HTTP requests and classifies the result
//     into an Outcome (success payload, remote API error, or transport fault).
//   - AddressingMode decides whether resources are addressed through a
//     configured mailbox (users/{id}/...) or the delegated session (me/...),
//     and provides the ordered endpoint candidates used for read fallback.
//
// Mailbox operations (messages, attachments, folders, categories, rules)
// sit on top of the pipeline and always return Outcomes. Failures are data,
// not panics: every error an agent can encounter is serializable.
package graph
