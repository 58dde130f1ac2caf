package interfaces

import (
	"context"
	"time"

	"github.com/openfunnel/mailtriage/internal/models"
)

type LeadRepository interface {
	List(ctx context.Context) ([]*models.Lead, error)
	GetByEmail(ctx context.Context, email string) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
	// UpdateLastFollowup persists the follow-up date for a single lead.
	// Callers update each lead as soon as its reminder is sent so a sweep
	// never sends twice for the same lead.
	UpdateLastFollowup(ctx context.Context, email string, date time.Time) error
	CountStale(ctx context.Context, olderThan time.Time) (int64, error)
}
