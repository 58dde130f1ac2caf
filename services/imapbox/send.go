package imapbox

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/tracing"
	"github.com/openfunnel/mailtriage/internal/utils"
)

func (s *imapService) SendReply(ctx context.Context, draft *models.ReplyDraft) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "imapService.SendReply")
	defer span.Finish()
	tracing.TagComponentMailboxGateway(span)
	span.SetTag(tracing.SpanTagRecipient, draft.To)

	from := s.cfg.FromAddress
	if from == "" {
		from = s.cfg.ImapUsername
	}

	message := buildMessage(from, draft.To, utils.ReplySubject(draft.Subject), draft.Body)

	addr := fmt.Sprintf("%s:%d", s.cfg.SmtpServer, s.cfg.SmtpPort)
	auth := smtp.PlainAuth("", s.cfg.ImapUsername, s.cfg.ImapPassword, s.cfg.SmtpServer)

	if err := smtp.SendMail(addr, auth, from, []string{draft.To}, message); err != nil {
		tracing.TraceErr(span, err)
		s.recordError(err)
		return errors.Wrapf(err, "failed to send reply to %s", draft.To)
	}
	s.recordSuccess()

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
