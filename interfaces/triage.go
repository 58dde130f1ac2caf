package interfaces

import (
	"context"
	"time"

	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/models"
)

// TriageService drives the poll → classify → act → mark-read cycle and the
// lead follow-up sweep.
type TriageService interface {
	// Run blocks, executing cycles at the configured interval until the
	// context is cancelled.
	Run(ctx context.Context) error
	// RunCycle executes exactly one triage cycle.
	RunCycle(ctx context.Context) error
	Status() TriageStatus
}

type TriageStatus struct {
	Running         bool
	CyclesCompleted uint64
	LastCycleAt     time.Time
	LastError       string
}

// ReplyChoice is the operator's decision for a customer reply. The custom
// body is only consulted for the custom variant.
type ReplyChoice struct {
	Variant    enum.ReplyVariant
	CustomBody string
}

// ReplySelector supplies the reply-variant decision for existing-customer
// messages. Implementations may be backed by configuration, an API call or
// a queue; the triage loop never prompts interactively.
type ReplySelector interface {
	Select(ctx context.Context, msg *models.InboundMessage, summary string) ReplyChoice
}
