package service

import (
	"context"
	"strings"

	"retro-taskmaster/internal/model"
	"retro-taskmaster/internal/repository"
)

// TaskInput represents data required to create or overwrite a task.
// Deadline is in display form (DD.MM.YYYY).
type TaskInput struct {
	Content  string
	Category string
	Deadline string
}

func (in TaskInput) normalized() TaskInput {
	return TaskInput{
		Content:  strings.TrimSpace(in.Content),
		Category: strings.TrimSpace(in.Category),
		Deadline: strings.TrimSpace(in.Deadline),
	}
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	input = input.normalized()
	if input.Content == "" {
		return nil, ErrEmptyContent
	}
	return s.taskRepo.Create(ctx, input.Content, input.Category, input.Deadline)
}

// UpdateTask overwrites content, category and deadline of a task.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint, input TaskInput) (*model.Task, error) {
	input = input.normalized()
	if input.Content == "" {
		return nil, ErrEmptyContent
	}
	if err := s.taskRepo.Update(ctx, taskID, input.Content, input.Category, input.Deadline); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(ctx, taskID)
}

// ListTasks returns tasks ordered by deadline, optionally for one category.
func (s *TaskService) ListTasks(ctx context.Context, category string) ([]model.Task, error) {
	return s.taskRepo.List(ctx, strings.TrimSpace(category))
}

func (s *TaskService) GetTask(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, taskID)
}

// ToggleTask writes !currentCompleted, trusting the caller's last view.
func (s *TaskService) ToggleTask(ctx context.Context, taskID uint, currentCompleted bool) error {
	return s.taskRepo.Toggle(ctx, taskID, currentCompleted)
}

// FlipTask negates the stored completion flag.
func (s *TaskService) FlipTask(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.taskRepo.Flip(ctx, taskID)
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	return s.taskRepo.Delete(ctx, taskID)
}
