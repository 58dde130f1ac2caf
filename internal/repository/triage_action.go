package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/tracing"
)

type triageActionRepository struct {
	db *gorm.DB
}

func NewTriageActionRepository(db *gorm.DB) interfaces.TriageActionRepository {
	return &triageActionRepository{
		db: db,
	}
}

func (r *triageActionRepository) Create(ctx context.Context, action *models.TriageAction) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "triageActionRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if err := r.db.WithContext(ctx).Create(action).Error; err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

func (r *triageActionRepository) List(ctx context.Context, limit, offset int) ([]*models.TriageAction, int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "triageActionRepository.List")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var actions []*models.TriageAction
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.TriageAction{}).
		Count(&count).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&actions).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, 0, err
	}

	return actions, count, nil
}
