package handlers

import (
	"net/http"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/gin-gonic/gin"

	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/tracing"
)

type addLeadRequest struct {
	Email  string `json:"email" binding:"required"`
	Source string `json:"source"`
}

// ListLeads returns all tracked leads
func ListLeads(leadRepository interfaces.LeadRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ListLeads", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		leads, err := leadRepository.List(ctx)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"leads": leads})
	}
}

// AddLead registers a lead manually, outside the enquiry flow
func AddLead(leadRepository interfaces.LeadRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "AddLead", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var req addLeadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		validation := mailvalidate.ValidateEmailSyntax(req.Email)
		if !validation.IsValid || validation.IsSystemGenerated {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
			return
		}

		source := req.Source
		if source == "" {
			source = "manual"
		}

		lead := &models.Lead{Email: validation.CleanEmail, Source: source}
		if err := leadRepository.Create(ctx, lead); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": "lead added", "email": lead.Email})
	}
}
