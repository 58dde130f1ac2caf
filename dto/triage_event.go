package dto

import (
	"time"

	"github.com/openfunnel/mailtriage/internal/enum"
)

const (
	EventTypeReplySent    = "reply.sent"
	EventTypeLeadFollowup = "lead.followup"
)

// TriageEvent is the envelope published after a terminal triage action.
type TriageEvent struct {
	ID             string              `json:"id"`
	Type           string              `json:"type"`
	Recipient      string              `json:"recipient"`
	Subject        string              `json:"subject"`
	Classification enum.Classification `json:"classification,omitempty"`
	Action         enum.TriageAction   `json:"action"`
	OccurredAt     time.Time           `json:"occurredAt"`
}
