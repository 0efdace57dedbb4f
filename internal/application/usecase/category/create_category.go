// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 50
	// MaxIconLength is the maximum allowed length for icon names.
	MaxIconLength = 50
)

var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	ProfileID uuid.UUID
	Name      string
	Color     string // Optional, defaults to DefaultCategoryColor
	Icon      string // Optional, defaults to DefaultCategoryIcon
	Type      entity.CategoryType
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"name is required",
			nil,
		)
	}

	if len(name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	if input.Color != "" && !hexColorRegex.MatchString(input.Color) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}

	if len(input.Icon) > MaxIconLength {
		input.Icon = input.Icon[:MaxIconLength]
	}

	if input.Type != entity.CategoryTypeExpense && input.Type != entity.CategoryTypeIncome {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	exists, err := uc.categoryRepo.ExistsByNameAndProfile(ctx, name, input.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	category := entity.NewCategory(input.ProfileID, name, input.Color, input.Icon, input.Type)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}
