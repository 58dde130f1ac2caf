package interfaces

import (
	"context"

	"github.com/openfunnel/mailtriage/internal/models"
)

type TriageActionRepository interface {
	Create(ctx context.Context, action *models.TriageAction) error
	List(ctx context.Context, limit, offset int) ([]*models.TriageAction, int64, error)
}
