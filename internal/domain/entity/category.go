// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a transaction category owned by a profile.
type Category struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	Name      string
	Color     string
	Icon      string
	Type      CategoryType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(profileID uuid.UUID, name, color, icon string, categoryType CategoryType) *Category {
	now := time.Now().UTC()

	if color == "" {
		color = DefaultCategoryColor
	}
	if icon == "" {
		icon = DefaultCategoryIcon
	}

	return &Category{
		ID:        uuid.New(),
		ProfileID: profileID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CategoryIndex maps category IDs to categories for quick existence checks.
type CategoryIndex map[uuid.UUID]*Category

// NewCategoryIndex builds a CategoryIndex from a slice of categories.
func NewCategoryIndex(categories []*Category) CategoryIndex {
	index := make(CategoryIndex, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index
}

// Name returns the category name, or the fallback when the category is unknown.
func (idx CategoryIndex) Name(id uuid.UUID, fallback string) string {
	if c, ok := idx[id]; ok {
		return c.Name
	}
	return fallback
}
