// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	ProfileID    uuid.UUID
	CategoryType *entity.CategoryType // Optional filter by category type
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindByProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if input.CategoryType != nil {
		filtered := make([]*entity.Category, 0, len(categories))
		for _, c := range categories {
			if c.Type == *input.CategoryType {
				filtered = append(filtered, c)
			}
		}
		categories = filtered
	}

	return &ListCategoriesOutput{Categories: categories}, nil
}
