package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/analytics/internal/application/usecase/category"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	input := category.ListCategoriesInput{ProfileID: profile}
	if categoryType := ctx.Query("type"); categoryType != "" {
		catType := entity.CategoryType(categoryType)
		input.CategoryType = &catType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to retrieve categories")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		ProfileID: profile,
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
		Type:      entity.CategoryType(req.Type),
	})
	if err != nil {
		respondError(ctx, err, "Failed to create category")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}
