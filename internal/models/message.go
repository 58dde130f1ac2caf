package models

// Sentinel values substituted when an inbound message is missing headers
// or a plain-text body.
const (
	NoSubject     = "No Subject"
	NoContent     = "No Content"
	UnknownSender = "Unknown Sender"
)

// InboundMessage is a single unread message as surfaced by a mailbox
// gateway. It lives for one triage cycle and is never persisted.
type InboundMessage struct {
	ID      string
	Sender  string
	Subject string
	Body    string
}

// ReplyDraft is an outbound reply handed to a mailbox gateway.
type ReplyDraft struct {
	To      string
	Subject string
	Body    string
}
