package repository

import (
	"context"
	"log"

	"gorm.io/gorm"

	"retro-taskmaster/internal/model"
)

// DefaultCategories are inserted the first time the categories table is empty.
var DefaultCategories = []model.Category{
	{Name: "Työ", Color: "#F96635", IconName: "Työ"},
	{Name: "Koulu", Color: "#F9A822", IconName: "Koulu"},
	{Name: model.SentinelCategory, Color: "#93D3AE", IconName: "Muu"},
}

// EnsureSchema creates missing tables, seeds default categories into an
// empty store and makes sure the fallback category exists. It is safe to
// run on every start.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.MasterCategory{}, &model.Category{}, &model.Task{}); err != nil {
		return storeErr("migrate db", err)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Category{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			seeds := make([]model.Category, len(DefaultCategories))
			copy(seeds, DefaultCategories)
			if err := tx.Create(&seeds).Error; err != nil {
				return err
			}
			log.Printf("[info] seeded %d default categories", len(seeds))
			return nil
		}

		sentinel := DefaultCategories[len(DefaultCategories)-1]
		var existing model.Category
		return tx.Where(model.Category{Name: model.SentinelCategory}).
			Attrs(model.Category{Color: sentinel.Color, IconName: sentinel.IconName}).
			FirstOrCreate(&existing).Error
	})
	return storeErr("seed categories", err)
}
