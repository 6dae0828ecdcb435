package postgres

import (
	"context"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return duplicate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":          user.Name,
		"age":           user.Age,
		"phone":         user.Phone,
		"city":          user.City,
		"needs_lodging": user.NeedsLodging,
		"transport":     user.Transport,
		"local_name":    user.LocalName,
		"membership":    user.Membership,
		"situation":     user.Situation,
	}).Error
}

func (r *userRepository) AssignGroup(ctx context.Context, userID, groupID uuid.UUID, responsible bool) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND group_id IS NULL", userID).
		Updates(map[string]interface{}{
			"group_id":             groupID,
			"is_group_responsible": responsible,
		})
	return result.RowsAffected == 1, result.Error
}

func (r *userRepository) ClearGroup(ctx context.Context, userID, groupID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND group_id = ?", userID, groupID).
		Updates(map[string]interface{}{
			"group_id":             nil,
			"is_group_responsible": false,
		})
	return result.RowsAffected == 1, result.Error
}

func (r *userRepository) ClearGroupMembers(ctx context.Context, groupID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("group_id = ?", groupID).
		Updates(map[string]interface{}{
			"group_id":             nil,
			"is_group_responsible": false,
		})
	return result.RowsAffected, result.Error
}

func (r *userRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Where("group_id = ?", groupID).Order("name").Find(&users).Error
	return users, err
}

func (r *userRepository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

func (r *userRepository) SetPaymentStatus(ctx context.Context, userID uuid.UUID, status models.PaymentStatus) error {
	if !status.Valid() {
		return repository.ErrInvalidPaymentStatus
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("payment_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *userRepository) TransitionPaymentStatus(ctx context.Context, userID uuid.UUID, from, to models.PaymentStatus) (bool, error) {
	if !to.Valid() {
		return false, repository.ErrInvalidPaymentStatus
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND payment_status = ?", userID, from).
		Update("payment_status", to)
	return result.RowsAffected == 1, result.Error
}

func (r *userRepository) MarkAttendance(ctx context.Context, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND attendance_registered = ? AND payment_status = ?", userID, false, models.PaymentConfirmed).
		Update("attendance_registered", true)
	return result.RowsAffected == 1, result.Error
}

func (r *userRepository) CountAttendance(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("attendance_registered = ?", true).Count(&count).Error
	return count, err
}

func (r *userRepository) SetSpecial(ctx context.Context, userID uuid.UUID, special bool) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("is_special", special).Error
}
