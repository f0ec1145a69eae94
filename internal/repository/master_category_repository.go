package repository

import (
	"context"

	"gorm.io/gorm"

	"retro-taskmaster/internal/model"
)

// MasterCategoryRepository manages the optional parent grouping over
// categories.
type MasterCategoryRepository struct {
	db *gorm.DB
}

func NewMasterCategoryRepository(db *gorm.DB) *MasterCategoryRepository {
	return &MasterCategoryRepository{db: db}
}

func (r *MasterCategoryRepository) List(ctx context.Context) ([]model.MasterCategory, error) {
	var masters []model.MasterCategory
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&masters).Error; err != nil {
		return nil, storeErr("list master categories", err)
	}
	return masters, nil
}

func (r *MasterCategoryRepository) Create(ctx context.Context, name, color, iconName string) (*model.MasterCategory, error) {
	master := model.MasterCategory{Name: name, Color: color, IconName: iconName}
	if err := r.db.WithContext(ctx).Create(&master).Error; err != nil {
		return nil, storeErr("create master category", err)
	}
	return &master, nil
}

// Delete detaches all child categories and removes the master row in one
// transaction. Child categories and their tasks are kept.
func (r *MasterCategoryRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Category{}).Where("master_id = ?", id).
			Update("master_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MasterCategory{}, id).Error
	})
	return storeErr("delete master category", err)
}
