package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retro-taskmaster/internal/model"
)

// CategoryRepository manages task categories. Tasks reference categories by
// name, so renames and deletes rewrite the tasks table in the same
// transaction.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories in creation order.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, storeErr("list categories", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	switch {
	case err == nil:
		return &category, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storeErr("find category", ErrCategoryNotFound)
	default:
		return nil, storeErr("find category", err)
	}
}

// Create inserts a category. A taken name yields ErrDuplicateKey.
func (r *CategoryRepository) Create(ctx context.Context, name, color, iconName string) (*model.Category, error) {
	category := model.Category{Name: name, Color: color, IconName: iconName}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, storeErr("create category", err)
	}
	return &category, nil
}

// Rename updates name, color and icon of oldName. When the name changes,
// every task tagged oldName is retagged newName in the same transaction.
func (r *CategoryRepository) Rename(ctx context.Context, oldName, newName, color, iconName string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.Where("name = ?", oldName).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if oldName == model.SentinelCategory && newName != oldName {
			return ErrSentinelCategory
		}

		updates := map[string]interface{}{
			"name":      newName,
			"color":     color,
			"icon_name": iconName,
		}
		if err := tx.Model(&category).Updates(updates).Error; err != nil {
			return err
		}
		if oldName == newName {
			return nil
		}
		return tx.Model(&model.Task{}).Where("category = ?", oldName).Update("category", newName).Error
	})
	return storeErr("rename category", err)
}

// Delete moves the category's tasks to the fallback category and removes
// the row. The fallback category itself is rejected with
// ErrSentinelCategory. Deleting an unknown name is a no-op.
func (r *CategoryRepository) Delete(ctx context.Context, name string) error {
	if name == model.SentinelCategory {
		return storeErr("delete category", ErrSentinelCategory)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).Where("category = ?", name).
			Update("category", model.SentinelCategory).Error; err != nil {
			return err
		}
		return tx.Where("name = ?", name).Delete(&model.Category{}).Error
	})
	return storeErr("delete category", err)
}

// AssignMaster sets or clears (nil) the master category of a category.
func (r *CategoryRepository) AssignMaster(ctx context.Context, name string, masterID *uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if masterID != nil {
			var master model.MasterCategory
			if err := tx.First(&master, *masterID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrMasterNotFound
				}
				return err
			}
		}
		res := tx.Model(&model.Category{}).Where("name = ?", name).Update("master_id", masterID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
	return storeErr("assign master category", err)
}
