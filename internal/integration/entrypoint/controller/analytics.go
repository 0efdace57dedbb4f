package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/analytics/internal/application/usecase/analytics"
	"github.com/finance-tracker/analytics/internal/integration/entrypoint/dto"
)

// AnalyticsController handles the full recompute endpoint.
type AnalyticsController struct {
	recomputeUseCase *analytics.RecomputeUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(recomputeUseCase *analytics.RecomputeUseCase) *AnalyticsController {
	return &AnalyticsController{recomputeUseCase: recomputeUseCase}
}

// Recompute handles POST /analytics/recompute requests.
func (c *AnalyticsController) Recompute(ctx *gin.Context) {
	profile, ok := profileID(ctx)
	if !ok {
		return
	}

	var req dto.RecomputeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		invalidBody(ctx, err)
		return
	}

	output, err := c.recomputeUseCase.Execute(ctx.Request.Context(), analytics.RecomputeInput{
		ProfileID: profile,
		Locale:    req.Locale,
	})
	if err != nil {
		respondError(ctx, err, "Failed to recompute analytics")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecomputeResponse(output.State))
}
