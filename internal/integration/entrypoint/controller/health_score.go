package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/analytics/internal/application/usecase/health"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// HealthScoreController handles financial health score endpoints.
type HealthScoreController struct {
	calculateUseCase *health.CalculateHealthScoreUseCase
	getUseCase       *health.GetHealthScoreUseCase
}

// NewHealthScoreController creates a new health score controller instance.
func NewHealthScoreController(
	calculateUseCase *health.CalculateHealthScoreUseCase,
	getUseCase *health.GetHealthScoreUseCase,
) *HealthScoreController {
	return &HealthScoreController{
		calculateUseCase: calculateUseCase,
		getUseCase:       getUseCase,
	}
}

// Get handles GET /health-score requests.
func (c *HealthScoreController) Get(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	score, err := c.getUseCase.Execute(ctx.Request.Context(), profile)
	if err != nil {
		respondError(ctx, err, "Failed to retrieve health score")
		return
	}
	if score == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: domainerror.ErrHealthScoreNotFound.Error(),
			Code:  string(domainerror.ErrCodeHealthScoreNotFound),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHealthScoreResponse(score))
}

// Calculate handles POST /health-score requests.
func (c *HealthScoreController) Calculate(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	var req dto.HealthScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		invalidBody(ctx, err)
		return
	}

	output, err := c.calculateUseCase.Execute(ctx.Request.Context(), health.CalculateHealthScoreInput{
		ProfileID: profile,
		Locale:    req.Locale,
	})
	if err != nil {
		respondError(ctx, err, "Failed to calculate health score")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHealthScoreResponse(output.Score))
}
