package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openfunnel/mailtriage/interfaces"
)

// HealthCheck provides a simple health check endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Status reports the mailbox connection state and the triage loop counters
func Status(mailboxService interfaces.MailboxService, triageService interfaces.TriageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"mailbox": mailboxService.Status(),
			"triage":  triageService.Status(),
		})
	}
}
