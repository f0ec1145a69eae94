package service

import (
	"context"
	"strings"

	"retro-taskmaster/internal/model"
	"retro-taskmaster/internal/repository"
)

// CategoryInput carries the editable fields of a category or master
// category. Color and Icon are palette keys.
type CategoryInput struct {
	Name  string
	Color string
	Icon  string
}

func (in CategoryInput) normalized() CategoryInput {
	return CategoryInput{
		Name:  strings.TrimSpace(in.Name),
		Color: strings.TrimSpace(in.Color),
		Icon:  strings.TrimSpace(in.Icon),
	}
}

// CategoryService provides helpers around categories and master categories.
type CategoryService struct {
	repo       *repository.CategoryRepository
	masterRepo *repository.MasterCategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository, masterRepo *repository.MasterCategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, masterRepo: masterRepo}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

// validateName rejects names that cannot be addressed in a URL path segment
// or that collide with the list filter.
func validateName(name string) error {
	switch {
	case name == "":
		return ErrEmptyName
	case strings.Contains(name, "/"):
		return ErrInvalidName
	case strings.EqualFold(name, model.AllCategories):
		return ErrReservedName
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	input = input.normalized()
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input.Name, input.Color, input.Icon)
}

// Rename updates oldName in place. Empty fields keep their current values so
// callers can change only the name, color or icon.
func (s *CategoryService) Rename(ctx context.Context, oldName string, input CategoryInput) (*model.Category, error) {
	input = input.normalized()
	current, err := s.repo.GetByName(ctx, oldName)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		input.Name = current.Name
	} else if input.Name != current.Name {
		if err := validateName(input.Name); err != nil {
			return nil, err
		}
	}
	if input.Color == "" {
		input.Color = current.Color
	}
	if input.Icon == "" {
		input.Icon = current.IconName
	}
	if err := s.repo.Rename(ctx, oldName, input.Name, input.Color, input.Icon); err != nil {
		return nil, err
	}
	return s.repo.GetByName(ctx, input.Name)
}

func (s *CategoryService) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}

// AssignMaster sets the parent of a category; nil clears it.
func (s *CategoryService) AssignMaster(ctx context.Context, name string, masterID *uint) error {
	return s.repo.AssignMaster(ctx, name, masterID)
}

func (s *CategoryService) ListMasters(ctx context.Context) ([]model.MasterCategory, error) {
	return s.masterRepo.List(ctx)
}

func (s *CategoryService) CreateMaster(ctx context.Context, input CategoryInput) (*model.MasterCategory, error) {
	input = input.normalized()
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	return s.masterRepo.Create(ctx, input.Name, input.Color, input.Icon)
}

func (s *CategoryService) DeleteMaster(ctx context.Context, id uint) error {
	return s.masterRepo.Delete(ctx, id)
}
