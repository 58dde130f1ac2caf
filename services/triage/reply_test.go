package triage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/models"
)

var testTemplates = Templates{
	CompanyName: "Acme Corp",
	SenderName:  "Jordan",
	Industry:    "widgets",
}

func testMessage() *models.InboundMessage {
	return &models.InboundMessage{
		ID:      "msg-1",
		Sender:  "Jane Doe <jane@client.com>",
		Subject: "Invoice question",
		Body:    "Can you resend the invoice?",
	}
}

func TestBuildReply_ShortVariant(t *testing.T) {
	draft := BuildReply(testTemplates, testMessage(), "summary", interfaces.ReplyChoice{Variant: enum.ReplyVariantShort})
	require.Equal(t, "jane@client.com", draft.To)
	require.Equal(t, "Invoice question", draft.Subject)
	require.Equal(t, shortReplyBody, draft.Body)
}

func TestBuildReply_DetailedVariantEmbedsSummary(t *testing.T) {
	draft := BuildReply(testTemplates, testMessage(), "The customer wants last month's invoice.", interfaces.ReplyChoice{Variant: enum.ReplyVariantDetailed})
	require.Contains(t, draft.Body, "The customer wants last month's invoice.")
	require.True(t, strings.HasPrefix(draft.Body, "Hello,"))
}

func TestBuildReply_MeetingVariant(t *testing.T) {
	draft := BuildReply(testTemplates, testMessage(), "summary", interfaces.ReplyChoice{Variant: enum.ReplyVariantMeeting})
	require.Equal(t, meetingReplyBody, draft.Body)
}

func TestBuildReply_CustomVariant(t *testing.T) {
	draft := BuildReply(testTemplates, testMessage(), "summary", interfaces.ReplyChoice{
		Variant:    enum.ReplyVariantCustom,
		CustomBody: "Personal note from the account manager.",
	})
	require.Equal(t, "Personal note from the account manager.", draft.Body)
}

func TestBuildReply_EmptyCustomFallsBackToShort(t *testing.T) {
	draft := BuildReply(testTemplates, testMessage(), "summary", interfaces.ReplyChoice{Variant: enum.ReplyVariantCustom})
	require.Equal(t, shortReplyBody, draft.Body)
}

func TestTemplates_IntroBodyMentionsCompanyAndSender(t *testing.T) {
	body := testTemplates.IntroBody()
	require.Contains(t, body, "Acme Corp")
	require.Contains(t, body, "widgets")
	require.Contains(t, body, "Jordan")
}

func TestStaticSelector_AlwaysReturnsConfiguredChoice(t *testing.T) {
	selector := NewStaticSelector(enum.ReplyVariantMeeting, "")
	choice := selector.Select(nil, testMessage(), "summary")
	require.Equal(t, enum.ReplyVariantMeeting, choice.Variant)
}
