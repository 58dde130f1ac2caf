package imapbox

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/emersion/go-imap"
	"github.com/jhillyerd/enmime"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/openfunnel/mailtriage/config"
	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/tracing"
)

// imapService is the generic IMAP/SMTP mailbox gateway. Message ids are
// IMAP UIDs within the configured folder.
type imapService struct {
	cfg *config.MailboxConfig

	statusMutex sync.RWMutex
	status      interfaces.MailboxStatus
}

func NewIMAPService(cfg *config.MailboxConfig) interfaces.MailboxService {
	return &imapService{
		cfg: cfg,
		status: interfaces.MailboxStatus{
			Provider: enum.MailboxProviderIMAP,
		},
	}
}

func (s *imapService) FetchNextUnread(ctx context.Context) (*models.InboundMessage, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "imapService.FetchNextUnread")
	defer span.Finish()
	tracing.TagComponentMailboxGateway(span)

	c, err := s.connect(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return nil, err
	}
	defer c.Logout()

	if _, err := c.Select(s.cfg.ImapFolder, false); err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return nil, errors.Wrapf(err, "failed to select folder %s", s.cfg.ImapFolder)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}

	uids, err := c.UidSearch(criteria)
	if err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return nil, errors.Wrap(err, "failed to search for unseen messages")
	}
	s.recordSuccess()

	if len(uids) == 0 {
		return nil, nil
	}

	// Highest UID is the most recent message in the folder.
	uid := uids[len(uids)-1]
	span.SetTag(tracing.SpanTagMessageID, uid)

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	// Peek so the fetch itself does not flag the message as seen; the
	// triage loop decides when a message is read.
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchUid, section.FetchItem()}

	messages := make(chan *imap.Message, 1)
	if err := c.UidFetch(seqSet, items, messages); err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return nil, errors.Wrapf(err, "failed to fetch message %d", uid)
	}

	msg, ok := <-messages
	if !ok || msg == nil {
		err = errors.Errorf("message with UID %d disappeared during fetch", uid)
		tracing.TraceErr(span, err)
		return nil, err
	}

	return parseMessage(msg, section, uid)
}

func (s *imapService) MarkRead(ctx context.Context, messageID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "imapService.MarkRead")
	defer span.Finish()
	tracing.TagComponentMailboxGateway(span)
	span.SetTag(tracing.SpanTagMessageID, messageID)

	uid, err := strconv.ParseUint(messageID, 10, 32)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrapf(err, "invalid message id %q", messageID)
	}

	c, err := s.connect(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return err
	}
	defer c.Logout()

	if _, err := c.Select(s.cfg.ImapFolder, false); err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return errors.Wrapf(err, "failed to select folder %s", s.cfg.ImapFolder)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uint32(uid))

	// Adding \Seen to a message that already carries it is a no-op, which
	// keeps this call idempotent.
	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.SeenFlag}
	if err := c.UidStore(seqSet, item, flags, nil); err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return errors.Wrapf(err, "failed to mark message %d as read", uid)
	}
	s.recordSuccess()

	return nil
}

func (s *imapService) Status() interfaces.MailboxStatus {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()
	return s.status
}

func (s *imapService) recordSuccess() {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	s.status.Connected = true
	s.status.LastError = ""
	s.status.LastChecked = time.Now().UTC()
}

func (s *imapService) recordError(err error) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	s.status.Connected = false
	s.status.LastError = err.Error()
	s.status.LastChecked = time.Now().UTC()
}

// parseMessage reads the raw RFC822 body out of the fetch result and
// flattens it into the gateway's inbound shape.
func parseMessage(msg *imap.Message, section *imap.BodySectionName, uid uint32) (*models.InboundMessage, error) {
	inbound := &models.InboundMessage{
		ID:      strconv.FormatUint(uint64(uid), 10),
		Sender:  models.UnknownSender,
		Subject: models.NoSubject,
		Body:    models.NoContent,
	}

	body := msg.GetBody(section)
	if body == nil {
		return inbound, nil
	}

	env, err := enmime.ReadEnvelope(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse message envelope")
	}

	if from := env.GetHeader("From"); from != "" {
		inbound.Sender = from
	}
	if subject := env.GetHeader("Subject"); subject != "" {
		inbound.Subject = subject
	}
	if env.Text != "" {
		inbound.Body = env.Text
	}

	return inbound, nil
}
