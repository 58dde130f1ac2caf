package handlers

import (
	"net/http"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/gin-gonic/gin"

	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/tracing"
)

type sendReplyRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// SendReply sends an operator-authored message through the configured
// mailbox, bypassing classification
func SendReply(mailboxService interfaces.MailboxService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "SendReply", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var req sendReplyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		validation := mailvalidate.ValidateEmailSyntax(req.To)
		if !validation.IsValid || validation.IsSystemGenerated {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipient address"})
			return
		}

		draft := &models.ReplyDraft{
			To:      validation.CleanEmail,
			Subject: req.Subject,
			Body:    req.Body,
		}
		if err := mailboxService.SendReply(ctx, draft); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "reply sent", "to": draft.To})
	}
}
