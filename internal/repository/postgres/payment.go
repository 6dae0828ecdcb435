package postgres

import (
	"context"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ReviewLatestPending(ctx context.Context, userID uuid.UUID, status string) (bool, error) {
	latest := r.db.Model(&models.Payment{}).Select("id").
		Where("user_id = ? AND status = ?", userID, models.ReviewPending).
		Order("created_at DESC").Limit(1)

	result := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = (?)", latest).
		Update("status", status)
	return result.RowsAffected == 1, result.Error
}
