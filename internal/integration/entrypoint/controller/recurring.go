package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/usecase/amortization"
	"github.com/finance-tracker/analytics/internal/application/usecase/recurring"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// RecurringController handles recurring payment and loan endpoints.
type RecurringController struct {
	listUseCase       *recurring.ListRecurringUseCase
	getUseCase        *recurring.GetRecurringUseCase
	createUseCase     *recurring.CreateRecurringUseCase
	emiSummaryUseCase *amortization.GetEMISummaryUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	listUseCase *recurring.ListRecurringUseCase,
	getUseCase *recurring.GetRecurringUseCase,
	createUseCase *recurring.CreateRecurringUseCase,
	emiSummaryUseCase *amortization.GetEMISummaryUseCase,
) *RecurringController {
	return &RecurringController{
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		createUseCase:     createUseCase,
		emiSummaryUseCase: emiSummaryUseCase,
	}
}

// List handles GET /recurring requests.
func (c *RecurringController) List(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListRecurringInput{
		ProfileID: profile,
		EMIOnly:   ctx.Query("emiOnly") == "true",
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve recurring payments")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringListResponse(output.Recurring))
}

// Get handles GET /recurring/:id requests.
func (c *RecurringController) Get(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}
	recurringID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	item, err := c.getUseCase.Execute(ctx.Request.Context(), recurring.GetRecurringInput{
		ProfileID:   profile,
		RecurringID: recurringID,
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve recurring payment")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringResponse(item))
}

// Create handles POST /recurring requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	var req dto.CreateRecurringRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	nextDue, err := dto.ParseDate(req.NextDue)
	if err != nil {
		invalidQuery(ctx, "Invalid next_due")
		return
	}

	input := recurring.CreateRecurringInput{
		ProfileID:   profile,
		Description: req.Description,
		Amount:      req.Amount,
		Frequency:   entity.Frequency(req.Frequency),
		NextDue:     nextDue,
		EMI:         req.EMI.ToEmiDetail(),
	}
	if req.CategoryID != nil {
		categoryID := uuid.MustParse(*req.CategoryID)
		input.CategoryID = &categoryID
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to create recurring payment")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringResponse(output.Recurring))
}

// EMISummary handles GET /emi/summary requests.
func (c *RecurringController) EMISummary(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	output, err := c.emiSummaryUseCase.Execute(ctx.Request.Context(), amortization.GetEMISummaryInput{ProfileID: profile})
	if err != nil {
		respondError(ctx, err, "Failed to compute loan summary")
		return
	}

	response := dto.ToEMISummaryResponse(output.Summary)
	response.Violations = dto.ToViolationResponses(output.Violations)
	ctx.JSON(http.StatusOK, response)
}
