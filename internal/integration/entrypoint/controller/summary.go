package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/analytics/internal/application/usecase/ledger"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// SummaryController handles ledger summary endpoints.
type SummaryController struct {
	summaryUseCase *ledger.GetSummaryUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(summaryUseCase *ledger.GetSummaryUseCase) *SummaryController {
	return &SummaryController{summaryUseCase: summaryUseCase}
}

// Get handles GET /summary requests. Without dates the current month is summarized.
func (c *SummaryController) Get(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	input := ledger.GetSummaryInput{ProfileID: profile}

	var err error
	if input.StartDate, err = dto.ParseOptionalDate(ctx.Query("startDate")); err != nil {
		invalidQuery(ctx, "Invalid startDate")
		return
	}
	if input.EndDate, err = dto.ParseOptionalDate(ctx.Query("endDate")); err != nil {
		invalidQuery(ctx, "Invalid endDate")
		return
	}
	if raw := ctx.Query("top"); raw != "" {
		top, err := strconv.Atoi(raw)
		if err != nil || top < 0 {
			invalidQuery(ctx, "Invalid top")
			return
		}
		input.TopCategories = top
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err, "Failed to compute summary")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}
