package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retro-taskmaster/internal/dates"
	"retro-taskmaster/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns tasks ordered by deadline. A filter other than "" or
// model.AllCategories keeps only tasks of that category. Filtering happens
// after the fetch so the relative order matches the unfiltered list.
func (r *TaskRepository) List(ctx context.Context, categoryFilter string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Order("deadline ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, storeErr("list tasks", err)
	}
	if categoryFilter == "" || categoryFilter == model.AllCategories {
		return tasks, nil
	}
	filtered := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Category == categoryFilter {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storeErr("find task", ErrTaskNotFound)
	default:
		return nil, storeErr("find task", err)
	}
}

// Create inserts a task. deadline is in display form (DD.MM.YYYY).
func (r *TaskRepository) Create(ctx context.Context, content, category, deadline string) (*model.Task, error) {
	iso, err := storageDate(deadline)
	if err != nil {
		return nil, storeErr("create task", err)
	}
	task := model.Task{
		Content:  content,
		Category: categoryOrSentinel(category),
		Deadline: iso,
	}
	if err := r.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, storeErr("create task", err)
	}
	return &task, nil
}

// Update overwrites content, category and deadline of a task.
func (r *TaskRepository) Update(ctx context.Context, id uint, content, category, deadline string) error {
	iso, err := storageDate(deadline)
	if err != nil {
		return storeErr("update task", err)
	}
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"content":  content,
		"category": categoryOrSentinel(category),
		"deadline": iso,
	})
	if res.Error != nil {
		return storeErr("update task", res.Error)
	}
	if res.RowsAffected == 0 {
		return storeErr("update task", ErrTaskNotFound)
	}
	return nil
}

// Toggle stores the negation of currentCompleted as seen by the caller.
// Two callers acting on the same stale snapshot both write the same value,
// so one toggle is lost; use Flip where that matters.
func (r *TaskRepository) Toggle(ctx context.Context, id uint, currentCompleted bool) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Update("completed", !currentCompleted)
	if res.Error != nil {
		return storeErr("toggle task", res.Error)
	}
	if res.RowsAffected == 0 {
		return storeErr("toggle task", ErrTaskNotFound)
	}
	return nil
}

// Flip negates completed inside the store and returns the updated task.
func (r *TaskRepository) Flip(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Task{}).Where("id = ?", id).Update("completed", gorm.Expr("NOT completed"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return tx.First(&task, id).Error
	})
	if err != nil {
		return nil, storeErr("flip task", err)
	}
	return &task, nil
}

// Delete removes a task. Deleting a missing id is not an error.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Task{}, id).Error; err != nil {
		return storeErr("delete task", err)
	}
	return nil
}

func storageDate(display string) (model.Date, error) {
	iso, err := dates.ParseDisplay(display)
	if err != nil {
		return "", err
	}
	return model.Date(iso), nil
}

func categoryOrSentinel(name string) string {
	if name == "" {
		return model.SentinelCategory
	}
	return name
}
