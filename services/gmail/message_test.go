package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/gmail/v1"

	"github.com/openfunnel/mailtriage/internal/models"
)

func TestParseMessage_HeadersAndBody(t *testing.T) {
	msg := &gmail.Message{
		Id: "msg-1",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "Pricing enquiry"},
				{Name: "From", Value: "Jane Doe <jane@example.com>"},
			},
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/plain",
					Body: &gmail.MessagePartBody{
						Data: base64.URLEncoding.EncodeToString([]byte("When can we meet?")),
					},
				},
			},
		},
	}

	inbound := parseMessage(msg)

	assert.Equal(t, "msg-1", inbound.ID)
	assert.Equal(t, "Jane Doe <jane@example.com>", inbound.Sender)
	assert.Equal(t, "Pricing enquiry", inbound.Subject)
	assert.Equal(t, "When can we meet?", inbound.Body)
}

func TestParseMessage_MissingHeaders_UsesSentinels(t *testing.T) {
	msg := &gmail.Message{
		Id:      "msg-2",
		Payload: &gmail.MessagePart{},
	}

	inbound := parseMessage(msg)

	assert.Equal(t, models.UnknownSender, inbound.Sender)
	assert.Equal(t, models.NoSubject, inbound.Subject)
	assert.Equal(t, models.NoContent, inbound.Body)
}

func TestPlainTextBody_NestedMultipart(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{MimeType: "application/pdf"},
			{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "text/plain",
						Body: &gmail.MessagePartBody{
							Data: base64.URLEncoding.EncodeToString([]byte("nested body")),
						},
					},
				},
			},
		},
	}

	assert.Equal(t, "nested body", plainTextBody(payload))
}
