package gmail

import (
	"encoding/base64"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/openfunnel/mailtriage/internal/models"
)

// parseMessage flattens a Gmail message into the gateway's inbound shape,
// substituting sentinels for anything missing.
func parseMessage(msg *gmail.Message) *models.InboundMessage {
	inbound := &models.InboundMessage{
		ID:      msg.Id,
		Sender:  models.UnknownSender,
		Subject: models.NoSubject,
		Body:    models.NoContent,
	}

	if msg.Payload == nil {
		return inbound
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			if header.Value != "" {
				inbound.Subject = header.Value
			}
		case "From":
			if header.Value != "" {
				inbound.Sender = header.Value
			}
		}
	}

	if body := plainTextBody(msg.Payload); body != "" {
		inbound.Body = body
	}

	return inbound
}

// plainTextBody walks the MIME tree looking for the first text/plain part.
func plainTextBody(payload *gmail.MessagePart) string {
	if payload.MimeType == "text/plain" && payload.Body != nil && payload.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(payload.Body.Data)
		if err == nil {
			return string(data)
		}
	}

	for _, part := range payload.Parts {
		mimeType := strings.ToLower(part.MimeType)
		if strings.HasPrefix(mimeType, "text/") || strings.HasPrefix(mimeType, "multipart/") {
			if body := plainTextBody(part); body != "" {
				return body
			}
		}
	}

	return ""
}
