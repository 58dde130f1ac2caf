package interfaces

import (
	"golang.org/x/net/context"
)

// AIService produces a summary/reply draft from raw message text. Callers
// treat it as best effort: on failure they substitute a static fallback
// instead of aborting the cycle.
type AIService interface {
	SummarizeAndRespond(ctx context.Context, text string) (string, error)
}
