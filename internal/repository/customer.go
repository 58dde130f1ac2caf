package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/tracing"
)

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) interfaces.CustomerRepository {
	return &customerRepository{
		db: db,
	}
}

func (r *customerRepository) Exists(ctx context.Context, email string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "customerRepository.Exists")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.SetTag(tracing.SpanTagSender, email)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}

	return count > 0, nil
}
