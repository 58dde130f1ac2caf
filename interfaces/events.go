package interfaces

import (
	"context"

	"github.com/openfunnel/mailtriage/dto"
)

// EventPublisher emits triage events for downstream consumers. A nil or
// disabled publisher is valid; the loop never depends on delivery.
type EventPublisher interface {
	Publish(ctx context.Context, event dto.TriageEvent) error
	Close() error
}
