package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/tracing"
)

const (
	defaultActionPageSize = 50
	maxActionPageSize     = 200
)

// ListActions returns the triage audit trail, newest first
func ListActions(actionRepository interfaces.TriageActionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "ListActions", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultActionPageSize)))
		if err != nil || limit < 1 {
			limit = defaultActionPageSize
		}
		if limit > maxActionPageSize {
			limit = maxActionPageSize
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		actions, total, err := actionRepository.List(ctx, limit, offset)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"actions": actions,
			"total":   total,
			"limit":   limit,
			"offset":  offset,
		})
	}
}
