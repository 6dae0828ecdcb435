package postgres

import (
	"context"

	"github.com/farellandr/encuentro/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type groupRepository struct {
	db *gorm.DB
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

func (r *groupRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&group).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

func (r *groupRepository) GetByCodeForUpdate(ctx context.Context, code string) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).First(&group).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

func (r *groupRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Group{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *groupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Group{}).Error
}

func (r *groupRepository) DeleteEmpty(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM users WHERE users.group_id = groups.id)").
		Delete(&models.Group{})
	return result.RowsAffected, result.Error
}
