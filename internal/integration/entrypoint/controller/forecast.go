package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/analytics/internal/application/usecase/forecast"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// ForecastController handles prediction endpoints.
type ForecastController struct {
	generateUseCase *forecast.GenerateForecastUseCase
	getUseCase      *forecast.GetPredictionsUseCase
}

// NewForecastController creates a new forecast controller instance.
func NewForecastController(
	generateUseCase *forecast.GenerateForecastUseCase,
	getUseCase *forecast.GetPredictionsUseCase,
) *ForecastController {
	return &ForecastController{
		generateUseCase: generateUseCase,
		getUseCase:      getUseCase,
	}
}

// Get handles GET /predictions requests.
func (c *ForecastController) Get(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), forecast.GetPredictionsInput{
		ProfileID: profile,
		Period:    entity.PredictionPeriod(ctx.Query("period")),
	})
	if err != nil {
		respondError(ctx, err, "Failed to retrieve predictions")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPredictionListResponse(output.Predictions))
}

// Generate handles POST /predictions requests.
func (c *ForecastController) Generate(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	var req dto.GenerateForecastRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		invalidBody(ctx, err)
		return
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), forecast.GenerateForecastInput{
		ProfileID: profile,
		Period:    entity.PredictionPeriod(req.Period),
	})
	if err != nil {
		respondError(ctx, err, "Failed to generate predictions")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPredictionListResponse(output.Predictions))
}
