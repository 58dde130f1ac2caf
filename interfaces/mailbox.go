package interfaces

import (
	"context"
	"time"

	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/models"
)

// MailboxService wraps an external mail provider. Implementations carry no
// triage logic; they surface at most one unread message per call so the
// loop's per-cycle work stays bounded.
type MailboxService interface {
	// FetchNextUnread returns the most recent unread message, or (nil, nil)
	// when the mailbox has none.
	FetchNextUnread(ctx context.Context) (*models.InboundMessage, error)
	// SendReply sends a reply threaded onto the draft's subject.
	SendReply(ctx context.Context, draft *models.ReplyDraft) error
	// MarkRead removes the unread flag. Marking an already-read message is
	// a no-op, not an error.
	MarkRead(ctx context.Context, messageID string) error
	Status() MailboxStatus
}

type MailboxStatus struct {
	Provider    enum.MailboxProvider
	Connected   bool
	LastError   string
	LastChecked time.Time
}
