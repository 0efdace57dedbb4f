// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(50);not null"`
	Color     string    `gorm:"type:varchar(7);default:'#6366F1'"`
	Icon      string    `gorm:"type:varchar(50);default:'tag'"`
	Type      string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		ProfileID: m.ProfileID,
		Name:      m.Name,
		Color:     m.Color,
		Icon:      m.Icon,
		Type:      entity.CategoryType(m.Type),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:        category.ID,
		ProfileID: category.ProfileID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		Type:      string(category.Type),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
