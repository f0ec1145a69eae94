package repository

import (
	"context"
	"errors"
	"testing"

	"retro-taskmaster/internal/model"
)

func TestMasterCategoryLifecycle(t *testing.T) {
	db := setupTestDB(t)
	masters := NewMasterCategoryRepository(db)
	categories := NewCategoryRepository(db)
	ctx := context.Background()

	master, err := masters.Create(ctx, "Arki", "Turkoosi", "Koti")
	if err != nil {
		t.Fatalf("Failed to create master category: %v", err)
	}
	if _, err := masters.Create(ctx, "Arki", "", ""); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	if err := categories.AssignMaster(ctx, "Työ", &master.ID); err != nil {
		t.Fatalf("Failed to assign master: %v", err)
	}
	if err := categories.AssignMaster(ctx, "Koulu", &master.ID); err != nil {
		t.Fatalf("Failed to assign master: %v", err)
	}

	work, _ := categories.GetByName(ctx, "Työ")
	if work.MasterID == nil || *work.MasterID != master.ID {
		t.Fatalf("Expected master %d, got %v", master.ID, work.MasterID)
	}

	if err := masters.Delete(ctx, master.ID); err != nil {
		t.Fatalf("Failed to delete master: %v", err)
	}

	for _, name := range []string{"Työ", "Koulu"} {
		cat, err := categories.GetByName(ctx, name)
		if err != nil {
			t.Fatalf("Child category %s should survive: %v", name, err)
		}
		if cat.MasterID != nil {
			t.Errorf("Expected %s master to be cleared, got %d", name, *cat.MasterID)
		}
	}

	list, err := masters.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list masters: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected no master categories, got %d", len(list))
	}
}

func TestAssignMasterErrors(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryRepository(db)
	ctx := context.Background()

	missing := uint(99)
	if err := categories.AssignMaster(ctx, "Työ", &missing); !errors.Is(err, ErrMasterNotFound) {
		t.Errorf("Expected ErrMasterNotFound, got %v", err)
	}
	if err := categories.AssignMaster(ctx, "Ghost", nil); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
	if err := categories.AssignMaster(ctx, "Työ", nil); err != nil {
		t.Errorf("Clearing master should succeed, got %v", err)
	}
}

func TestMasterForeignKey(t *testing.T) {
	db := setupTestDB(t)
	masters := NewMasterCategoryRepository(db)
	categories := NewCategoryRepository(db)
	ctx := context.Background()

	err := db.Model(&model.Category{}).Where("name = ?", "Työ").Update("master_id", 999).Error
	if err == nil {
		t.Fatal("Expected the store to reject an unknown master id")
	}

	master, err := masters.Create(ctx, "Arki", "", "")
	if err != nil {
		t.Fatalf("Failed to create master category: %v", err)
	}
	if err := categories.AssignMaster(ctx, "Koulu", &master.ID); err != nil {
		t.Fatalf("Failed to assign master: %v", err)
	}

	// A direct row delete still detaches the children.
	if err := db.Delete(&model.MasterCategory{}, master.ID).Error; err != nil {
		t.Fatalf("Failed to delete master row: %v", err)
	}
	school, err := categories.GetByName(ctx, "Koulu")
	if err != nil {
		t.Fatalf("Failed to load category: %v", err)
	}
	if school.MasterID != nil {
		t.Errorf("Expected master to be cleared by the store, got %d", *school.MasterID)
	}
}
