package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/usecase/budget"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	listUseCase    *budget.ListBudgetsUseCase
	createUseCase  *budget.CreateBudgetUseCase
	updateUseCase  *budget.UpdateBudgetUseCase
	disableUseCase *budget.DisableBudgetUseCase
	replaceUseCase *budget.ReplaceBudgetsUseCase
	statusUseCase  *budget.GetStatusUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	listUseCase *budget.ListBudgetsUseCase,
	createUseCase *budget.CreateBudgetUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	disableUseCase *budget.DisableBudgetUseCase,
	replaceUseCase *budget.ReplaceBudgetsUseCase,
	statusUseCase *budget.GetStatusUseCase,
) *BudgetController {
	return &BudgetController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		disableUseCase: disableUseCase,
		replaceUseCase: replaceUseCase,
		statusUseCase:  statusUseCase,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{
		ProfileID:       profile,
		IncludeInactive: ctx.Query("includeInactive") == "true",
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve budgets")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), budget.CreateBudgetInput{
		ProfileID:      profile,
		CategoryID:     uuid.MustParse(req.CategoryID),
		Amount:         req.Amount,
		Period:         entity.BudgetPeriod(req.Period),
		AlertThreshold: req.AlertThreshold,
	})
	if err != nil {
		respondError(ctx, err, "Failed to create budget")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(output.Budget))
}

// Update handles PATCH /budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}
	budgetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	input := budget.UpdateBudgetInput{
		ProfileID:      profile,
		BudgetID:       budgetID,
		Amount:         req.Amount,
		AlertThreshold: req.AlertThreshold,
	}
	if req.Period != nil {
		period := entity.BudgetPeriod(*req.Period)
		input.Period = &period
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to update budget")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Disable handles DELETE /budgets/:id requests. The budget is kept but no longer evaluated.
func (c *BudgetController) Disable(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}
	budgetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.disableUseCase.Execute(ctx.Request.Context(), budget.DisableBudgetInput{
		ProfileID: profile,
		BudgetID:  budgetID,
	}); err != nil {
		respondError(ctx, err, "Failed to disable budget")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Replace handles PUT /budgets requests.
func (c *BudgetController) Replace(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	var req dto.ReplaceBudgetsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	items := make([]budget.ReplaceBudgetItem, 0, len(req.Budgets))
	for _, b := range req.Budgets {
		items = append(items, budget.ReplaceBudgetItem{
			CategoryID:     uuid.MustParse(b.CategoryID),
			Amount:         b.Amount,
			Period:         entity.BudgetPeriod(b.Period),
			AlertThreshold: b.AlertThreshold,
		})
	}

	output, err := c.replaceUseCase.Execute(ctx.Request.Context(), budget.ReplaceBudgetsInput{
		ProfileID: profile,
		Budgets:   items,
	})
	if err != nil {
		respondError(ctx, err, "Failed to replace budgets")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Status handles GET /budgets/status requests.
func (c *BudgetController) Status(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	output, err := c.statusUseCase.Execute(ctx.Request.Context(), budget.GetStatusInput{ProfileID: profile})
	if err != nil {
		respondError(ctx, err, "Failed to compute budget status")
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetStatusListResponse{
		Statuses:   dto.ToBudgetStatusResponses(output.Statuses),
		Violations: dto.ToViolationResponses(output.Violations),
	})
}
