package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/usecase/transaction"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// TransactionController handles ledger endpoints.
type TransactionController struct {
	listUseCase     *transaction.ListTransactionsUseCase
	createUseCase   *transaction.CreateTransactionUseCase
	reassignUseCase *transaction.ReassignCategoryUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	reassignUseCase *transaction.ReassignCategoryUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		reassignUseCase: reassignUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{ProfileID: profile}

	var err error
	if input.StartDate, err = dto.ParseOptionalDate(ctx.Query("startDate")); err != nil {
		invalidQuery(ctx, "Invalid startDate")
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(ctx.Query("endDate")); err != nil {
		invalidQuery(ctx, "Invalid endDate")
		return
	}
	if raw := ctx.Query("categoryId"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			invalidQuery(ctx, "Invalid categoryId")
			return
		}
		input.CategoryID = &categoryID
	}
	if raw := ctx.Query("type"); raw != "" {
		txType := entity.TransactionType(raw)
		input.Type = &txType
	}
	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			invalidQuery(ctx, "Invalid limit")
			return
		}
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to retrieve transactions")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		invalidQuery(ctx, "Invalid date")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		ProfileID:   profile,
		Type:        entity.TransactionType(req.Type),
		Amount:      req.Amount,
		CategoryID:  uuid.MustParse(req.CategoryID),
		Date:        date,
		Description: req.Description,
		EMI:         req.EMI.ToEmiDetail(),
	})
	if err != nil {
		respondError(ctx, err, "Failed to create transaction")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Reassign handles PATCH /transactions/:id/category requests.
func (c *TransactionController) Reassign(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReassignCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, err)
		return
	}

	output, err := c.reassignUseCase.Execute(ctx.Request.Context(), transaction.ReassignCategoryInput{
		ProfileID:     profile,
		TransactionID: transactionID,
		CategoryID:    uuid.MustParse(req.CategoryID),
	})
	if err != nil {
		respondError(ctx, err, "Failed to reassign transaction")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}
