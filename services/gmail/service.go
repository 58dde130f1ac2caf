package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/openfunnel/mailtriage/config"
	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/tracing"
	"github.com/openfunnel/mailtriage/internal/utils"
)

const gmailUser = "me"

type gmailService struct {
	srv *gmail.Service

	statusMutex sync.RWMutex
	status      interfaces.MailboxStatus
}

// NewGmailService builds a Gmail-backed mailbox gateway from a previously
// authorized token (see the auth command). It never prompts interactively.
func NewGmailService(ctx context.Context, cfg *config.MailboxConfig) (interfaces.MailboxService, error) {
	httpClient, err := oauthClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, errors.Wrap(err, "unable to create Gmail service")
	}

	return &gmailService{
		srv: srv,
		status: interfaces.MailboxStatus{
			Provider:  enum.MailboxProviderGmail,
			Connected: true,
		},
	}, nil
}

func (s *gmailService) FetchNextUnread(ctx context.Context) (*models.InboundMessage, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "gmailService.FetchNextUnread")
	defer span.Finish()
	tracing.TagComponentMailboxGateway(span)

	result, err := s.srv.Users.Messages.List(gmailUser).
		LabelIds("INBOX").
		Q("is:unread").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return nil, errors.Wrap(err, "unable to list unread messages")
	}
	s.recordSuccess()

	if len(result.Messages) == 0 {
		return nil, nil
	}

	msgID := result.Messages[0].Id
	span.SetTag(tracing.SpanTagMessageID, msgID)

	data, err := s.srv.Users.Messages.Get(gmailUser, msgID).Context(ctx).Do()
	if err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return nil, errors.Wrapf(err, "unable to get message %s", msgID)
	}

	return parseMessage(data), nil
}

func (s *gmailService) SendReply(ctx context.Context, draft *models.ReplyDraft) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "gmailService.SendReply")
	defer span.Finish()
	tracing.TagComponentMailboxGateway(span)
	span.SetTag(tracing.SpanTagRecipient, draft.To)

	raw := fmt.Sprintf(
		"To: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		draft.To, utils.ReplySubject(draft.Subject), draft.Body,
	)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := s.srv.Users.Messages.Send(gmailUser, message).Context(ctx).Do()
	if err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return errors.Wrapf(err, "unable to send reply to %s", draft.To)
	}
	s.recordSuccess()

	return nil
}

func (s *gmailService) MarkRead(ctx context.Context, messageID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "gmailService.MarkRead")
	defer span.Finish()
	tracing.TagComponentMailboxGateway(span)
	span.SetTag(tracing.SpanTagMessageID, messageID)

	// Removing the UNREAD label from an already-read message is a no-op on
	// the Gmail side, which keeps this call idempotent.
	_, err := s.srv.Users.Messages.Modify(gmailUser, messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return errors.Wrapf(err, "unable to mark message %s as read", messageID)
	}
	s.recordSuccess()

	return nil
}

func (s *gmailService) Status() interfaces.MailboxStatus {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()
	return s.status
}

func (s *gmailService) recordSuccess() {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	s.status.Connected = true
	s.status.LastError = ""
	s.status.LastChecked = time.Now().UTC()
}

func (s *gmailService) recordError(err error) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	s.status.Connected = false
	s.status.LastError = err.Error()
	s.status.LastChecked = time.Now().UTC()
}
