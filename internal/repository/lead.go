package repository

import (
	"context"
	"errors"
	"time"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/openfunnel/mailtriage/interfaces"
	mtErrors "github.com/openfunnel/mailtriage/internal/errors"
	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/tracing"
)

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) interfaces.LeadRepository {
	return &leadRepository{
		db: db,
	}
}

func (r *leadRepository) List(ctx context.Context) ([]*models.Lead, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "leadRepository.List")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var leads []*models.Lead
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&leads).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.SetTag("result.count", len(leads))
	return leads, nil
}

func (r *leadRepository) GetByEmail(ctx context.Context, email string) (*models.Lead, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "leadRepository.GetByEmail")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var lead models.Lead
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "leadRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	// Duplicate creation is a no-op so an enquiry sender who writes twice
	// does not raise an error mid-cycle.
	existing, err := r.GetByEmail(ctx, lead.Email)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if existing != nil {
		span.SetTag("duplicate", true)
		return nil
	}

	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

func (r *leadRepository) UpdateLastFollowup(ctx context.Context, email string, date time.Time) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "leadRepository.UpdateLastFollowup")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	result := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"last_followup": date,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		err := mtErrors.ErrLeadNotFound
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

func (r *leadRepository) CountStale(ctx context.Context, olderThan time.Time) (int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "leadRepository.CountStale")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("last_followup IS NOT NULL AND last_followup < ?", olderThan).
		Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}
	return count, nil
}
