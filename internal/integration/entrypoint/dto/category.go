package dto

import (
	"time"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Type  string `json:"type" binding:"required,oneof=expense income"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Color:     cat.Color,
		Icon:      cat.Icon,
		Type:      string(cat.Type),
		CreatedAt: cat.CreatedAt,
	}
}

// ToCategoryListResponse converts categories to a CategoryListResponse DTO.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, ToCategoryResponse(c))
	}
	return CategoryListResponse{Categories: responses}
}
