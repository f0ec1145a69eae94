package repository

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

// setupTestDB opens a fresh SQLite file with the full schema and seeds.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB("sqlite", filepath.Join(t.TempDir(), "data", "tasks.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}
	return db
}

func mustCreateTask(t *testing.T, repo *TaskRepository, content, category, deadline string) uint {
	t.Helper()
	task, err := repo.Create(context.Background(), content, category, deadline)
	if err != nil {
		t.Fatalf("Failed to create task %q: %v", content, err)
	}
	return task.ID
}
