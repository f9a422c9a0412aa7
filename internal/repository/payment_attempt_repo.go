package repository

import (
	"context"

	"petcare/internal/domain"

	"gorm.io/gorm"
)

type PaymentAttemptRepository struct {
	db *gorm.DB
}

func NewPaymentAttemptRepository(db *gorm.DB) *PaymentAttemptRepository {
	return &PaymentAttemptRepository{db: db}
}

func (r *PaymentAttemptRepository) Create(ctx context.Context, a *domain.PaymentAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// RecordOutcome stores the callback verdict on the attempt that carried the
// reference. Missing attempts are ignored: the registration row stays the
// source of truth, the attempt log is diagnostics.
func (r *PaymentAttemptRepository) RecordOutcome(ctx context.Context, reference string, status domain.PaymentAttemptStatus, rawQuery string) error {
	return r.db.WithContext(ctx).Model(&domain.PaymentAttempt{}).
		Where("reference = ?", reference).
		Updates(map[string]interface{}{
			"status":         status,
			"callback_query": rawQuery,
		}).Error
}

func (r *PaymentAttemptRepository) ListByRegistration(ctx context.Context, registrationID int64) ([]domain.PaymentAttempt, error) {
	var out []domain.PaymentAttempt
	err := r.db.WithContext(ctx).
		Where("registration_id = ?", registrationID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
