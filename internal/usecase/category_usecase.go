package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/moneta-app/moneta/internal/domain"
)

// CategoryUseCase handles the category tree.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	idGen        IDGenerator
	now          func() time.Time
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, idGen IDGenerator) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		idGen:        idGen,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	Name     string
	Kind     domain.CategoryKind
	Type     domain.CategoryType
	ParentID string
}

// CreateCategory creates a category node, validating the parent is a folder
// of the same type.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrCategoryNotFound)
	}

	if input.ParentID != "" {
		parent, err := uc.categoryRepo.GetByID(ctx, input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.Kind != domain.CategoryFolder {
			return nil, fmt.Errorf("%w: parent %s is not a folder", domain.ErrCategoryNotFound, input.ParentID)
		}
		if parent.Type != input.Type {
			return nil, fmt.Errorf("%w: parent %s has a different category type", domain.ErrCategoryNotFound, input.ParentID)
		}
	}

	now := uc.now()

	category := &domain.Category{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Kind:      input.Kind,
		Type:      input.Type,
		ParentID:  input.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// ListCategories returns the full tree, shadow included (the caller filters
// for display; pickers use ListPicker).
func (uc *CategoryUseCase) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return uc.categoryRepo.List(ctx)
}

// ListPicker returns the entry categories of the given type offered in
// pickers: shadow categories are always excluded.
func (uc *CategoryUseCase) ListPicker(ctx context.Context, categoryType domain.CategoryType) ([]*domain.Category, error) {
	return uc.categoryRepo.ListEntries(ctx, categoryType, false)
}
