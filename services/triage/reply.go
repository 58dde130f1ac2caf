package triage

import (
	"context"
	"fmt"

	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/utils"
)

const (
	shortReplyBody   = "Thank you for reaching out. We acknowledge your email and will get back to you soon."
	meetingReplyBody = "We'd love to discuss this further. Can we schedule a meeting?"

	followupSubject = "Following up on your inquiry"
	followupBody    = "Just checking if you had any questions."
)

// Templates carries the identity slotted into the canned reply bodies.
type Templates struct {
	CompanyName string
	SenderName  string
	Industry    string
}

func (t Templates) IntroBody() string {
	return fmt.Sprintf(
		"Hello,\n\n"+
			"Thank you for reaching out! We are %s, a leader in %s.\n\n"+
			"We'd love to discuss how we can help. Can we set up a quick introductory meeting?\n\n"+
			"Let us know a time that works for you!\n\n"+
			"Best Regards,\n%s\n%s",
		t.CompanyName, t.Industry, t.SenderName, t.CompanyName,
	)
}

func (t Templates) DetailedBody(summary string) string {
	return fmt.Sprintf("Hello,\n\n%s\n\nLet me know how we can assist further.", summary)
}

// BuildReply turns the operator's choice into a concrete draft for an
// existing-customer message. It is pure: any caller (CLI, API, queue) can
// supply the choice.
func BuildReply(tmpl Templates, msg *models.InboundMessage, summary string, choice interfaces.ReplyChoice) *models.ReplyDraft {
	draft := &models.ReplyDraft{
		To:      utils.ExtractAddress(msg.Sender),
		Subject: msg.Subject,
	}

	switch choice.Variant {
	case enum.ReplyVariantDetailed:
		draft.Body = tmpl.DetailedBody(summary)
	case enum.ReplyVariantMeeting:
		draft.Body = meetingReplyBody
	case enum.ReplyVariantCustom:
		if choice.CustomBody != "" {
			draft.Body = choice.CustomBody
		} else {
			draft.Body = shortReplyBody
		}
	default:
		draft.Body = shortReplyBody
	}

	return draft
}

// StaticSelector always answers with the same configured choice.
type StaticSelector struct {
	Choice interfaces.ReplyChoice
}

func NewStaticSelector(variant enum.ReplyVariant, customBody string) *StaticSelector {
	return &StaticSelector{
		Choice: interfaces.ReplyChoice{
			Variant:    variant,
			CustomBody: customBody,
		},
	}
}

func (s *StaticSelector) Select(ctx context.Context, msg *models.InboundMessage, summary string) interfaces.ReplyChoice {
	return s.Choice
}
